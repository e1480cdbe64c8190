package main

import (
	"log"
	"os"
	"pharmacy/pkg/testutils"
	"strconv"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: testdata {number_of_products} {output_dir}")
	}
	lines, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		log.Fatalf("{number_of_products} must be int")
	}
	path := testutils.GenerateTestData(int(lines), os.Args[2])
	log.Printf("catalog written to %s", path)
}
