// intscan-lut builds the integer scanner's lookup table and writes it to a
// file, either raw (65,536 records of 19 bytes) or as a compressed archive.
//
// Usage:
//
//	intscan-lut [options]
//
// Options:
//
//	-o <file>          output file (default: intscan.lut)
//	-codec <name>      raw, stored, lz4, lz4hc, snappy, zlib, zstd (default: zstd)
//	-level <n>         compression level 1-9 (default: 7)
//	-transpose <mode>  none, byte, bit (default: byte)
//	-verify            reload the file and compare it with a fresh table
//	-v                 verbose output
//	-version           show version information
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mrjoshuak/go-intscan"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("intscan-lut: ")

	out := flag.String("o", "intscan.lut", "output file")
	codecName := flag.String("codec", "zstd", "raw, stored, lz4, lz4hc, snappy, zlib, zstd")
	level := flag.Int("level", 7, "compression level (1-9)")
	transposeName := flag.String("transpose", "byte", "record transposition (none, byte, bit)")
	verify := flag.Bool("verify", false, "reload the written file and compare")
	verbose := flag.Bool("v", false, "verbose output")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: intscan-lut [options]\n\n")
		fmt.Fprintf(os.Stderr, "Build the digit pattern lookup table and write it to a file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("intscan-lut version %s\n", intscan.Version)
		os.Exit(0)
	}
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts, err := packOptions(*codecName, *level, *transposeName)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	table := intscan.BuildTable()
	if *verbose {
		log.Printf("built %d entries in %v", intscan.PatternCount, time.Since(start))
	}

	if err := intscan.WriteTableFile(*out, table, opts); err != nil {
		log.Fatal(err)
	}
	if *verbose {
		if fi, err := os.Stat(*out); err == nil {
			log.Printf("wrote %s (%d bytes, raw size %d)", *out, fi.Size(), intscan.TableSize)
		}
	}

	if *verify {
		loaded, err := intscan.LoadTableFile(*out)
		if err != nil {
			log.Fatalf("verify: %v", err)
		}
		if !loaded.Equal(table) {
			log.Fatalf("verify: %s does not match the built table", *out)
		}
		if *verbose {
			log.Printf("verified %s", *out)
		}
	}
}

// packOptions maps the command line to archive options. The "raw" codec
// returns nil, which writes the table without a header.
func packOptions(codecName string, level int, transposeName string) (*intscan.PackOptions, error) {
	var mode intscan.Transpose
	switch transposeName {
	case "none":
		mode = intscan.NoTranspose
	case "byte":
		mode = intscan.ByteTranspose
	case "bit":
		mode = intscan.BitTranspose
	default:
		return nil, fmt.Errorf("unknown transposition %q", transposeName)
	}

	if codecName == "raw" {
		return nil, nil
	}

	codec, err := intscan.ParseCodec(codecName)
	if err != nil {
		return nil, err
	}

	return &intscan.PackOptions{Codec: codec, Level: level, Transpose: mode}, nil
}
