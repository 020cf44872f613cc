package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sigillum/sigillum/keys"
)

func KeygenCommand() {
	var global globalFlags
	var force bool

	keygenFlags := flag.NewFlagSet("keygen", flag.ContinueOnError)
	global.register(keygenFlags)
	keygenFlags.BoolVar(&force, "force", false, "Replace an existing key pair")

	keygenFlags.Usage = func() {
		fmt.Printf("Usage: %s keygen [options]\n\n", os.Args[0])
		fmt.Printf("Generate an RSA-%d key pair and store it\n", keys.Bits)
		fmt.Println("\nOptions:")
		keygenFlags.PrintDefaults()
	}
	if !parse(keygenFlags) {
		return
	}

	store, err := global.store()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	if store.Exists() && !force {
		log.Printf("A key pair already exists at %s, use -force to replace it", store.Path)
		osExit(1)
		return
	}

	kp, err := store.Generate()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	log.Println("Key pair written to " + store.Path)
	printPublicKey(kp.PublicKey)
}

func ExportCommand() {
	var global globalFlags

	exportFlags := flag.NewFlagSet("export", flag.ContinueOnError)
	global.register(exportFlags)

	exportFlags.Usage = func() {
		fmt.Printf("Usage: %s export [options]\n\n", os.Args[0])
		fmt.Println("Print the stored private key in PEM form")
		fmt.Println("\nOptions:")
		exportFlags.PrintDefaults()
	}
	if !parse(exportFlags) {
		return
	}

	store, err := global.store()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	private, err := store.Export()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	fmt.Print(private)
}

func ImportCommand() {
	var global globalFlags
	var privatePath, publicPath string

	importFlags := flag.NewFlagSet("import", flag.ContinueOnError)
	global.register(importFlags)
	importFlags.StringVar(&privatePath, "private", "", "PEM file holding the private key")
	importFlags.StringVar(&publicPath, "public", "", "PEM file holding the public key")

	importFlags.Usage = func() {
		fmt.Printf("Usage: %s import [options] -private <key.pem> -public <pub.pem>\n\n", os.Args[0])
		fmt.Println("Validate a key pair and store it, replacing the stored one")
		fmt.Println("\nOptions:")
		importFlags.PrintDefaults()
	}
	if !parse(importFlags) {
		return
	}

	if privatePath == "" || publicPath == "" {
		importFlags.Usage()
		osExit(1)
		return
	}

	private, err := os.ReadFile(privatePath)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	public, err := os.ReadFile(publicPath)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}

	store, err := global.store()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	kp, err := store.Import(string(private), string(public))
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	log.Println("Key pair imported to " + store.Path)
	printPublicKey(kp.PublicKey)
}

func PubkeyCommand() {
	var global globalFlags

	pubkeyFlags := flag.NewFlagSet("pubkey", flag.ContinueOnError)
	global.register(pubkeyFlags)

	pubkeyFlags.Usage = func() {
		fmt.Printf("Usage: %s pubkey [options]\n\n", os.Args[0])
		fmt.Println("Print the stored public key and its fingerprint")
		fmt.Println("\nOptions:")
		pubkeyFlags.PrintDefaults()
	}
	if !parse(pubkeyFlags) {
		return
	}

	store, err := global.store()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	public, err := store.PublicKey()
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	printPublicKey(public)
}

func printPublicKey(public string) {
	fmt.Print(public)
	fingerprint, err := keys.Fingerprint(public)
	if err != nil {
		log.Printf("Warning: failed to compute fingerprint: %v", err)
		return
	}
	fmt.Println("Fingerprint: " + fingerprint)
}
