package main

import "github.com/walexbarnes/nosey-web-sdk/internal/cmd"

func main() {
	cmd.Execute()
}
