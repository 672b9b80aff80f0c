package main

import (
	"flag"
	"time"

	"github.com/insolar/stampede"
)

// local target for manual runs: serves /ok, /fail and /html
func main() {
	addr := flag.String("addr", ":9031", "listen address")
	sleep := flag.Int("sleep", 50, "response delay, milliseconds")
	flag.Parse()
	_ = stampede.RunTestServer(*addr, time.Duration(*sleep)*time.Millisecond)
	select {}
}
