package main

import (
	"os"
	"runtime"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

func NewServer(capacity int64) *server {
	return &server{
		jobs:     semaphore.NewWeighted(capacity),
		capacity: capacity,
	}
}

func jobsCapacity() int64 {
	capacity := int64(runtime.NumCPU() * 2)

	if raw, ok := os.LookupEnv("BATTLESHIP_JOBS"); ok {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			log.Fatal("invalid BATTLESHIP_JOBS", "value", raw)
		}
		capacity = n
	}

	return capacity
}

func setupLogging() {
	raw, ok := os.LookupEnv("BATTLESHIP_LOG_LEVEL")
	if !ok {
		return
	}

	level, err := log.ParseLevel(raw)
	if err != nil {
		log.Fatal("invalid BATTLESHIP_LOG_LEVEL", "value", raw, "err", err)
	}
	log.SetLevel(level)
}

func main() {
	setupLogging()

	router := gin.Default()

	s := NewServer(jobsCapacity())

	s.RegisterEndpoints(router)

	addr := "127.0.0.1:4239"
	if len(os.Args) >= 2 {
		addr = os.Args[1]
	}

	log.Info("listening", "addr", addr, "jobs", s.capacity)
	log.Fatal(router.Run(addr))
}
