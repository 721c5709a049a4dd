/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command jsys_test is the bundled reference daemon of spec.md §6: it
// binds one TCP endpoint, echoes back the hash of whatever a peer sends,
// and shuts down cleanly on SIGINT/SIGTERM.
package main

import (
	"fmt"
	"os"
	"syscall"

	spfcbr "github.com/spf13/cobra"

	"github.com/jaycgo/jayc/client"
	"github.com/jaycgo/jayc/hashutil"
	"github.com/jaycgo/jayc/logger"
	loglvl "github.com/jaycgo/jayc/logger/level"
	"github.com/jaycgo/jayc/procexit"
	"github.com/jaycgo/jayc/server"
	"github.com/jaycgo/jayc/signal"
	"github.com/jaycgo/jayc/socket"
	"github.com/jaycgo/jayc/socket/tcp"
	"github.com/jaycgo/jayc/supervisor"
	"github.com/jaycgo/jayc/worker"
)

func main() {
	var (
		ip        string
		port      int
		hashFlag  int
		syslogTag string
	)

	cmd := &spfcbr.Command{
		Use:   "jsys_test",
		Short: "jayc reference daemon: hashes whatever a connected peer sends",
		RunE: func(cmd *spfcbr.Command, args []string) error {
			return run(ip, port, hashFlag, syslogTag)
		},
	}

	cmd.Flags().StringVar(&ip, "ip", "127.0.0.1", "address to bind")
	cmd.Flags().IntVar(&port, "port", 1234, "port to bind")
	cmd.Flags().IntVar(&hashFlag, "hash", 1, "hash algorithm: 0=none 1=md5 2=sha256 3=sha512")
	cmd.Flags().StringVar(&syslogTag, "syslog", "", "log to syslog using the given value as the syslog tag (the facility is always daemon); default logs to stdio")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newDaemon wires a Supervisor over a bound TCP listener whose data
// callback hashes each payload it receives and echoes back the digest.
// Split out of run so tests can drive the supervisor directly instead of
// through run's blocking select.
func newDaemon(ip string, port int, hashFlag int, log logger.Logger) (*supervisor.Supervisor, error) {
	algo, err := hashutil.ParseAlgorithm(hashFlag)
	if err != nil {
		return nil, err
	}

	srv := server.New(func() (socket.Endpoint, error) {
		e := tcp.New(ip, port, logger.GetDefault)
		if err := e.Bind(); err != nil {
			return nil, err
		}
		return e, nil
	})

	createCB := func(ref string, reason worker.Reason) bool {
		log.Info("connection accepted: %s (%s)", ref, reason)
		return true
	}
	dataCB := func(ref string, c client.Client) {
		buf := make([]byte, 4096)
		n, err := c.Recv(buf)
		if err != nil || n == 0 {
			return
		}
		digest := hashutil.Digest(algo, buf[:n])
		if _, err := c.Send(digest); err != nil {
			log.Warn("send failed for %s: %v", ref, err)
		}
	}
	closeCB := func(ref string, reason worker.Reason) {
		log.Info("connection closed: %s reason=%s", ref, reason.String())
	}

	sup := supervisor.New(srv, createCB, dataCB, closeCB, supervisor.WithLogger(logger.GetDefault))
	if err := sup.Start(); err != nil {
		return nil, err
	}
	return sup, nil
}

func run(ip string, port int, hashFlag int, syslogTag string) error {
	log, err := buildLogger(syslogTag)
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	sup, err := newDaemon(ip, port, hashFlag, log)
	if err != nil {
		return err
	}

	procexit.Register(func(code int, _ interface{}) {
		log.Info("exit hook: stopping supervisor (code=%d)", code)
		_ = sup.Free()
	}, nil)

	stopOnce := func(sig os.Signal, _ interface{}) {
		log.Info("received %s, shutting down", sig)
		procexit.Exit(0)
	}
	signal.Register(syscall.SIGINT, nil, stopOnce)
	signal.Register(syscall.SIGTERM, nil, stopOnce)

	select {}
}

func buildLogger(syslogTag string) (logger.Logger, error) {
	if syslogTag == "" {
		return logger.New(loglvl.InfoLevel, logger.WithStdio()), nil
	}

	opt, err := logger.WithSyslog(syslogTag)
	if err != nil {
		return nil, err
	}
	return logger.New(loglvl.InfoLevel, opt), nil
}
