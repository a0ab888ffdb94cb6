package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"lsrouted.dev/lsrouted/cmd"
	"lsrouted.dev/lsrouted/cmd/inputreader"
	"lsrouted.dev/lsrouted/config"
	"lsrouted.dev/lsrouted/daemon"
	"lsrouted.dev/lsrouted/hello"
	"lsrouted.dev/lsrouted/iface"
	"lsrouted.dev/lsrouted/installer"
	"lsrouted.dev/lsrouted/lsa"
	"lsrouted.dev/lsrouted/routing"
	"lsrouted.dev/lsrouted/sock"
	"lsrouted.dev/lsrouted/topology"
	"lsrouted.dev/lsrouted/util/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	id, ok := config.RouterID()
	if !ok {
		logger.Warnf("No router id configured; set the %s environment variable", config.RouterIDEnv)
		return 1
	}

	topo, err := topology.Load(config.TopologyPath())
	if err != nil {
		logger.Warnf("Failed to load topology file %s: %v", config.TopologyPath(), err)
		return 1
	}

	ifaces, err := iface.Enumerate()
	if err != nil {
		logger.Warnf("Failed to enumerate network interfaces: %v", err)
		return 1
	}
	if len(ifaces) == 0 {
		logger.Warnf("No broadcast-capable interfaces found")
		return 1
	}

	addresses := make([]string, 0, len(ifaces))
	for _, i := range ifaces {
		addresses = append(addresses, i.Address.String())
	}

	var routeInstaller routing.RouteInstaller
	if config.InstallRoutesEnabled() {
		routeInstaller = installer.NewNetlink()
	} else {
		routeInstaller = installer.Noop{}
	}

	router := routing.New(id, topo, routeInstaller)

	socket := sock.NewUDPSocket()
	if err := socket.Open(net.IPv4zero, config.Port()); err != nil {
		logger.Warnf("Failed to open control socket: %v", err)
		return 1
	}
	fmt.Printf("Router %s listening on UDP port %d\n", id, config.Port())

	helloEmitter := hello.New(router, socket, config.Port())
	lsaEmitter := lsa.New(router, socket, config.Port())
	receiver := daemon.New(socket, router, lsaEmitter)

	helloEmitter.Start(ifaces)
	lsaEmitter.Start(addresses)
	receiver.Start()

	var shutdownOnce sync.Once
	shutdown := func() {
		shutdownOnce.Do(func() {
			receiver.Stop()
			lsaEmitter.Stop()
			helloEmitter.Stop()
			socket.Close()
		})
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signals
		shutdown()
		os.Exit(0)
	}()

	cmd.SetGlobalVars(socket, router)
	cmd.ShutdownFunc = shutdown

	reader := inputreader.NewInputReader(socket)
	reader.AddHandler("lsdb", cmd.HandleLSDB)
	reader.AddHandler("neighbors", cmd.HandleNeighbors)
	reader.AddHandler("routes", cmd.HandleRoutes)
	reader.AddHandler("loglvl", cmd.HandleLogLevel)
	reader.AddHandler("exit", cmd.HandleExit)

	reader.InputLoop()
	shutdown()

	return 0
}
