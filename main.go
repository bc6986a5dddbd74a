/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/monadgen/cmd"
	"github.com/josephgoksu/monadgen/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
