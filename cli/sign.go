package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sigillum/sigillum/config"
	"github.com/sigillum/sigillum/sign"
)

func SignCommand() {
	var global globalFlags
	var name, extra string

	signFlags := flag.NewFlagSet("sign", flag.ContinueOnError)
	global.register(signFlags)
	signFlags.StringVar(&name, "name", "", "Name of the signatory (default: name from the config)")
	signFlags.StringVar(&extra, "extra", "", "Optional extra line, e.g. a department (default: extra from the config)")

	signFlags.Usage = func() {
		fmt.Printf("Usage: %s sign [options] <input.pdf> <output.pdf>\n\n", os.Args[0])
		fmt.Println("Add a signature watermark to every page of a PDF file")
		fmt.Println("\nOptions:")
		signFlags.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Printf("  %s sign -name \"John Doe\" input.pdf output.pdf\n", os.Args[0])
		fmt.Printf("  %s sign -name \"John Doe\" -extra \"Legal department\" input.pdf output.pdf\n", os.Args[0])
	}
	if !parse(signFlags) {
		return
	}

	if len(signFlags.Args()) < 2 {
		signFlags.Usage()
		osExit(1)
		return
	}

	SignPDF(global, signFlags.Arg(0), signFlags.Arg(1), name, extra)
}

// SignPDF signs input into output with the stored key pair.
var SignPDF = signPDFImpl

func signPDFImpl(global globalFlags, input, output, name, extra string) {
	store, err := global.store()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	if name == "" {
		name = config.Settings.Name
	}
	if extra == "" {
		extra = config.Settings.Extra
	}
	if name == "" {
		log.Println("A signatory name is required, set -name or name in the config")
		osExit(1)
		return
	}

	kp, err := store.Load()
	if err != nil {
		log.Printf("%v, run keygen or import first", err)
		osExit(1)
		return
	}
	signer, err := kp.Signer()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}

	result, err := sign.SignFile(input, output, sign.SignData{
		Name:   name,
		Extra:  extra,
		Signer: signer,
	})
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	fmt.Println(string(jsonData))
	log.Println("Signed PDF written to " + output)
}
