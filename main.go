// Command sigillum adds signature watermarks to PDF files and reads them
// back.
package main

import (
	"fmt"
	"os"

	"github.com/sigillum/sigillum/cli"
)

func main() {
	if len(os.Args) < 2 {
		cli.Usage()
		return
	}

	switch os.Args[1] {
	case "keygen":
		cli.KeygenCommand()
	case "export":
		cli.ExportCommand()
	case "import":
		cli.ImportCommand()
	case "pubkey":
		cli.PubkeyCommand()
	case "sign":
		cli.SignCommand()
	case "verify":
		cli.VerifyCommand()
	case "-h", "--help", "help":
		cli.Usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		cli.Usage()
	}
}
