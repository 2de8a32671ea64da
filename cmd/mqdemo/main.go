// Command mqdemo drives a message queue from a simulated interrupt line and prints a JSON report.
//
// Usage:
//
//	go run ./cmd/mqdemo -irq-hz 5000 -consumers 2 -duration 3s
package main

import (
	"context"
	"flag"
	ashmq "github.com/Borislavv/go-ash-mq"
	"github.com/Borislavv/go-ash-mq/config"
	"github.com/Borislavv/go-ash-mq/internal/shared/random"
	"github.com/Borislavv/go-ash-mq/internal/shared/rate"
	"github.com/Borislavv/go-ash-mq/kernel"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sugawarayuuta/sonnet"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type report struct {
	Duration  string         `json:"duration"`
	IRQ       irqReport      `json:"irq"`
	Consumers consumerReport `json:"consumers"`
	Queue     queueReport    `json:"queue"`
	Kernel    kernelReport   `json:"kernel"`
}

type irqReport struct {
	Hz        int   `json:"hz"`
	Pulses    int64 `json:"pulses"`
	Coalesced int64 `json:"coalesced"`
	Delivered int64 `json:"delivered"`
	Dropped   int64 `json:"dropped"`
}

type consumerReport struct {
	Workers  int   `json:"workers"`
	Received int64 `json:"received"`
	Timeouts int64 `json:"timeouts"`
}

type queueReport struct {
	Name    string        `json:"name"`
	State   ashmq.State   `json:"state"`
	Metrics ashmq.Metrics `json:"metrics"`
}

type kernelReport struct {
	Ticks    int64  `json:"ticks"`
	Yields   int64  `json:"isr_yields"`
	TimedOut int64  `json:"timed_out_waits"`
	Halts    int64  `json:"halts"`
	Interval string `json:"tick_interval"`
}

func main() {
	cfgPath := flag.String("config", "", "path to yaml config (optional)")
	irqHz := flag.Int("irq-hz", 2000, "interrupt line frequency")
	consumers := flag.Int("consumers", 2, "number of consumer tasks")
	duration := flag.Duration("duration", 2*time.Second, "how long to run")
	capacity := flag.Uint("capacity", 16, "queue capacity in messages")
	size := flag.Uint("size", 16, "message size in bytes")
	burst := flag.Int("burst", 3, "max messages put per interrupt")
	wait := flag.Duration("wait", 10*time.Millisecond, "consumer get timeout")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if *capacity == 0 || *size == 0 || *consumers < 1 || *burst < 1 {
		log.Fatal().Msg("capacity, size, consumers and burst must be positive")
	}

	cfg := &config.Config{}
	if *cfgPath != "" {
		loaded, err := config.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *cfgPath).Msg("load config")
		}
		cfg = loaded
	}

	kernel.SetHaltHandler(func(err error) {
		log.Error().Err(err).Msg("halt")
	})

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	mq := ashmq.New(context.Background(), cfg, logger)
	defer func() { _ = mq.Close() }()

	q := mq.Create(context.Background(), uint32(*capacity), uint32(*size), ashmq.WithName("irq"))

	log.Info().
		Int("irq_hz", *irqHz).
		Int("consumers", *consumers).
		Dur("duration", *duration).
		Uint32("capacity", q.Capacity()).
		Uint32("message_size", q.MessageSize()).
		Msg("[mqdemo] started")

	var (
		delivered, dropped atomic.Int64
		received, timeouts atomic.Int64
	)

	line := rate.NewLine(ctx, *irqHz)
	irqDone := make(chan struct{})
	go func() {
		defer close(irqDone)
		msg := make([]byte, q.MessageSize())
		for line.Wait() {
			n := 1 + random.Intn(*burst)
			mq.Kernel().Interrupt(context.Background(), func(ctx context.Context) {
				for i := 0; i < n; i++ {
					random.Fill(msg)
					if q.Put(ctx, msg, 0) == kernel.Ok {
						delivered.Add(1)
					} else {
						dropped.Add(1)
					}
				}
			})
		}
	}()

	timeout := mq.Kernel().DurationToTicks(*wait)
	var wg sync.WaitGroup
	for c := 0; c < *consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]byte, q.MessageSize())
			for ctx.Err() == nil {
				switch q.Get(context.Background(), out, timeout) {
				case kernel.Ok:
					received.Add(1)
				case kernel.ErrorTimeout:
					timeouts.Add(1)
				}
			}
		}()
	}

	<-irqDone
	wg.Wait()

	// drain what the consumers left behind
	out := make([]byte, q.MessageSize())
	for q.Get(context.Background(), out, 0) == kernel.Ok {
		received.Add(1)
	}

	fired, missed := line.Pulses()
	st, _ := q.State()
	ticks, yields, timedOut := mq.Kernel().Metrics()

	data, err := sonnet.Marshal(report{
		Duration: duration.String(),
		IRQ: irqReport{
			Hz:        line.Hz(),
			Pulses:    fired,
			Coalesced: missed,
			Delivered: delivered.Load(),
			Dropped:   dropped.Load(),
		},
		Consumers: consumerReport{
			Workers:  *consumers,
			Received: received.Load(),
			Timeouts: timeouts.Load(),
		},
		Queue: queueReport{
			Name:    q.Name(),
			State:   st,
			Metrics: q.Metrics(),
		},
		Kernel: kernelReport{
			Ticks:    ticks,
			Yields:   yields,
			TimedOut: timedOut,
			Halts:    kernel.Halts(),
			Interval: mq.Kernel().TickInterval().String(),
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("marshal report")
	}

	q.Destroy(context.Background())

	_, _ = os.Stdout.Write(append(data, '\n'))
	log.Info().
		Int64("delivered", delivered.Load()).
		Int64("received", received.Load()).
		Msg("[mqdemo] finished")
}
