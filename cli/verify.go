package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sigillum/sigillum/verify"
)

func VerifyCommand() {
	var global globalFlags

	verifyFlags := flag.NewFlagSet("verify", flag.ContinueOnError)
	global.register(verifyFlags)

	verifyFlags.Usage = func() {
		fmt.Printf("Usage: %s verify [options] <input.pdf>\n\n", os.Args[0])
		fmt.Println("Read the signature watermark of a PDF file")
		fmt.Println("The exit status is 1 when the file carries no watermark.")
		fmt.Println("\nOptions:")
		verifyFlags.PrintDefaults()
	}
	if !parse(verifyFlags) {
		return
	}

	if len(verifyFlags.Args()) < 1 {
		verifyFlags.Usage()
		osExit(1)
		return
	}

	VerifyPDF(verifyFlags.Arg(0))
}

func VerifyPDF(input string) {
	resp, err := verify.VerifyFile(input)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}

	jsonData, err := json.Marshal(resp)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	fmt.Println(string(jsonData))

	if !resp.IsSigned {
		osExit(1)
	}
}
