package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func serveMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	log.Println(http.ListenAndServe(addr, nil))
}
