package main

import (
	"flag"
	"fmt"
	"os"

	"scene-raytracer/internal/imageio"
)

func main() {
	tolerance := flag.Int("tolerance", 0, "Largest per-channel difference still counted as equal (0-255)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imgdiff [-tolerance N] <a> <b>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	if *tolerance < 0 || *tolerance > 255 {
		fmt.Fprintf(os.Stderr, "Error: tolerance %d out of range 0-255\n", *tolerance)
		os.Exit(2)
	}

	a, err := imageio.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	b, err := imageio.Load(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	d, err := imageio.Compare(a, b, uint8(*tolerance))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(d)
	if !d.Identical() {
		os.Exit(1)
	}
}
