// Command swicc-mkdisk builds a binary disk image from a JSON filesystem
// description, for hand-authoring test cards without assembling byte
// buffers directly.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swiccgo/swicc/pkg/diskjson"
)

func main() {
	in := flag.String("in", "", "input JSON disk description")
	out := flag.String("out", "", "output binary disk image path")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: swicc-mkdisk -in disk.json -out disk.img")
		os.Exit(1)
	}

	if err := run(*in, *out); err != nil {
		fmt.Fprintf(os.Stderr, "swicc-mkdisk: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open %q: %w", inPath, err)
	}
	defer f.Close()

	disk, err := diskjson.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %q: %w", inPath, err)
	}

	w, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", outPath, err)
	}
	defer w.Close()

	if err := disk.Save(w); err != nil {
		return fmt.Errorf("write %q: %w", outPath, err)
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}
