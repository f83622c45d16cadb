// Command hosbabel is the terminal front-end for the HOS_BABEL chat backend.
package main

import "github.com/hosbabel/hosbabel/internal/commands"

func main() {
	commands.Execute()
}
