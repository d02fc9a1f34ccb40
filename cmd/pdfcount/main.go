// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/Geek0x0/pagecount"
)

func main() {
	debug := flag.Bool("debug", false, "log each strategy the resolver tries")
	async := flag.Bool("async", false, "count pages on a background goroutine")
	timeout := flag.Duration("timeout", 0, "with -async, stop waiting and exit 2 if counting takes longer than this (ignored without -async)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pdfcount [-debug] [-async] [-timeout d] file.pdf")
		os.Exit(1)
	}
	path := flag.Arg(0)
	pdf.DebugOn = *debug

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var n int
	var err error
	if *async {
		f, err2 := os.Open(path)
		if err2 != nil {
			log.Fatalf("open %s: %v", path, err2)
		}
		defer f.Close()
		fi, err2 := f.Stat()
		if err2 != nil {
			log.Fatalf("stat %s: %v", path, err2)
		}
		select {
		case res := <-pdf.CountPagesAsyncContext(ctx, f, fi.Size()):
			n, err = res.N, res.Err
		case <-ctx.Done():
			err = ctx.Err()
		}
	} else {
		n, err = pdf.CountPages(path)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, pdf.ErrPageCountNotFound) || ctx.Err() != nil {
			os.Exit(2)
		}
		os.Exit(1)
	}
	fmt.Println(n)
}
