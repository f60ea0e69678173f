package main

import "github.com/hoangt/cerebrum-design-tool-sub004/cmd/falconmap/cmd"

func main() {
	cmd.Execute()
}
