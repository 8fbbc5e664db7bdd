package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/996BC/latticenet/node"
	"github.com/996BC/latticenet/utils"
	"github.com/996BC/latticenet/wire"
)

func main() {
	cf := flag.String("c", "", "config file")
	metricsAddr := flag.String("metrics", "", "prometheus listen address, empty disables metrics")
	flag.Parse()

	conf, err := node.ParseConfig(*cf)
	if err != nil {
		log.Fatal(err)
	}
	utils.SetLogLevel(conf.LogLevel)

	var metrics *wire.ParserMetrics
	if *metricsAddr != "" {
		metrics = wire.NewParserMetrics(nil)
		go serveMetrics(*metricsAddr)
	}

	n, err := node.New(conf, metrics)
	if err != nil {
		log.Fatal(err)
	}

	if err := n.Start(); err != nil {
		log.Fatal(err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, os.Interrupt)
	signal.Notify(sc, syscall.SIGTERM)
	<-sc

	n.Stop()
}
