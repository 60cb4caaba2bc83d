package main

import "github.com/yannicklang1/eu-complience-hub-sub008/cmd"

func main() {
	cmd.Execute()
}
