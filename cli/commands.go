package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sigillum/sigillum/config"
	"github.com/sigillum/sigillum/keys"
)

var osExit = os.Exit

func Usage() {
	fmt.Printf("Usage: %s <command> [options] <args>\n\n", os.Args[0])
	fmt.Println("Commands:")
	fmt.Println("  keygen  Generate and store a new key pair")
	fmt.Println("  export  Print the stored private key")
	fmt.Println("  import  Store an existing key pair")
	fmt.Println("  pubkey  Print the stored public key")
	fmt.Println("  sign    Add a signature watermark to a PDF file")
	fmt.Println("  verify  Read the signature watermark of a PDF file")
	fmt.Println("")
	fmt.Printf("Use '%s <command> -h' for command-specific help\n", os.Args[0])
	osExit(1)
}

// globalFlags are accepted by every command.
type globalFlags struct {
	keyFile    string
	configFile string
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.keyFile, "keys", "", "Key pair file (default: per-user data directory)")
	fs.StringVar(&g.configFile, "config", config.DefaultLocation, "TOML config file")
}

// store reads the config file and opens the key store. A -keys flag wins
// over the config's keyFile.
func (g *globalFlags) store() (*keys.Store, error) {
	if err := config.Read(g.configFile); err != nil {
		return nil, err
	}
	path := g.keyFile
	if path == "" {
		path = config.Settings.KeyFile
	}
	return keys.Open(path)
}

// parse parses the command's flags and exits on failure.
func parse(fs *flag.FlagSet) bool {
	if err := fs.Parse(os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			osExit(0)
			return false
		}
		fmt.Fprintf(os.Stderr, "Failed to parse %s flags: %v\n", fs.Name(), err)
		osExit(1)
		return false
	}
	return true
}
