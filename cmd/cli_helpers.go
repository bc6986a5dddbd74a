/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}
