package main

import "github.com/hquocmanh0502/cmp-travel-ai-web/cmd"

func main() {
	cmd.Execute()
}
