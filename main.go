package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Qalifah/freightbooking/assistant"
	"github.com/Qalifah/freightbooking/booking"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/config"
	"github.com/Qalifah/freightbooking/inmem"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/routing"
	"github.com/Qalifah/freightbooking/tracking"
)

func main() {
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	}

	cfg, err := config.Load()
	if err != nil {
		level.Error(logger).Log("msg", "failed to load config", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, allow(cfg.LogLevel))
	logger = log.With(logger, "service", cfg.ServiceName, "env", cfg.Environment)

	otTracer := stdopentracing.GlobalTracer()

	var zipkinTracer *stdzipkin.Tracer
	if cfg.ZipkinURL != "" {
		reporter := zipkinhttp.NewReporter(cfg.ZipkinURL)
		defer reporter.Close()
		zEP, _ := stdzipkin.NewEndpoint(cfg.ServiceName, cfg.HTTPAddr)
		zipkinTracer, err = stdzipkin.NewTracer(reporter, stdzipkin.WithLocalEndpoint(zEP))
		if err != nil {
			level.Error(logger).Log("msg", "failed to create zipkin tracer", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("tracer", "zipkin", "url", cfg.ZipkinURL)
	}

	var (
		sessions      = inmem.NewSessionRepository()
		bookings      = inmem.NewBookingRepository()
		conversations = inmem.NewConversationRepository()
	)

	gateways := routing.NewService(location.NewCatalog())

	fieldKeys := []string{"method"}

	var bs booking.Service
	bs = booking.NewService(sessions, bookings, gateways, func(ref cargo.Reference) {
		level.Info(logger).Log("msg", "booking confirmed", "reference", ref)
	})
	bs = booking.NewLoggingService(log.With(logger, "component", "booking"), bs)
	bs = booking.NewInstrumentingService(
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "booking_service",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "api",
			Subsystem: "booking_service",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: "api",
			Subsystem: "booking_service",
			Name:      "booking_value",
			Help:      "Total price of confirmed bookings.",
			Buckets:   stdprometheus.LinearBuckets(1000, 500, 8),
		}, []string{}),
		bs,
	)

	var ts tracking.Service
	ts = tracking.NewService(bookings)
	ts = tracking.NewLoggingService(log.With(logger, "component", "tracking"), ts)
	ts = tracking.NewInstrumentingService(
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "tracking_service",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "api",
			Subsystem: "tracking_service",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		ts,
	)

	var as assistant.Service
	as = assistant.NewService(conversations, assistant.Unavailable)
	as = assistant.NewLoggingService(log.With(logger, "component", "assistant"), as)
	as = assistant.NewInstrumentingService(
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "assistant_service",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "api",
			Subsystem: "assistant_service",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "assistant_service",
			Name:      "fallback_count",
			Help:      "Number of answers replaced by a fallback.",
		}, []string{}),
		as,
	)

	limit := rate.Limit(cfg.RateLimit)
	httpLogger := log.With(logger, "component", "http")

	mux := http.NewServeMux()
	mux.Handle("/booking/v1/", booking.MakeHandler(
		booking.NewSet(bs, logger, otTracer, zipkinTracer, limit, cfg.RateBurst),
		otTracer, zipkinTracer, httpLogger))
	mux.Handle("/tracking/v1/", tracking.MakeHandler(
		tracking.NewSet(ts, otTracer, zipkinTracer, limit, cfg.RateBurst),
		otTracer, zipkinTracer, httpLogger))
	mux.Handle("/assistant/v1/", assistant.MakeHandler(
		assistant.NewSet(as, otTracer, zipkinTracer, limit, cfg.RateBurst),
		otTracer, zipkinTracer, httpLogger))
	mux.Handle("/metrics", promhttp.Handler())

	http.Handle("/", accessControl(mux))

	errs := make(chan error, 2)
	go func() {
		level.Info(logger).Log("transport", "http", "address", cfg.HTTPAddr, "msg", "listening")
		errs <- http.ListenAndServe(cfg.HTTPAddr, nil)
	}()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	level.Info(logger).Log("terminated", <-errs)
}

func allow(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	}
	return level.AllowInfo()
}

func accessControl(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type")

		if r.Method == "OPTIONS" {
			return
		}

		h.ServeHTTP(w, r)
	})
}
