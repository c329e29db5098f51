package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/options-machine/src/eventmodels"
	"github.com/jiaming2012/options-machine/src/eventpubsub"
	"github.com/jiaming2012/options-machine/src/router"
	"github.com/jiaming2012/options-machine/src/utils"
)

const serviceName = "options-machine"

type ServeArgs struct {
	Addr      string
	Scenarios *eventmodels.ScenariosConfigYAML
	Telemetry bool
}

func logParametersUpdated(event eventmodels.ParametersUpdatedEvent) {
	if event.View == nil || event.View.Valuation == nil {
		return
	}

	log.WithFields(log.Fields{
		"session":  event.SessionID,
		"scenario": event.View.Scenario,
	}).Infof("%v -> total value %.2f, settle now %.2f", event.View.Parameters, event.View.Valuation.TotalOptionValuePerShare, event.View.Valuation.SettleNowProfitLossTotal)
}

// NewServer wires the bus, the session handler and the instrumented router.
func NewServer(ctx context.Context, args ServeArgs) (*http.Server, *router.Handler, error) {
	bus := eventpubsub.New()
	if err := bus.Subscribe(eventmodels.ParametersUpdatedEventName, logParametersUpdated); err != nil {
		return nil, nil, fmt.Errorf("NewServer: %w", err)
	}

	handler := router.NewHandler(args.Scenarios, bus)

	r := mux.NewRouter()
	router.SetupHandler(r, handler)

	srv := &http.Server{
		Handler: otelhttp.NewHandler(r, "/"),
		Addr:    args.Addr,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	return srv, handler, nil
}

// Serve blocks until ctx is cancelled, then shuts the server down.
func Serve(ctx context.Context, args ServeArgs) (err error) {
	if args.Telemetry {
		otelShutdown, setupErr := utils.SetupOTelSDK(ctx, serviceName)
		if setupErr != nil {
			return fmt.Errorf("Serve: failed to setup otel sdk: %w", setupErr)
		}

		defer func() {
			err = errors.Join(err, otelShutdown(context.Background()))
		}()
	}

	srv, handler, err := NewServer(ctx, args)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", args.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("Serve: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	handler.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("Serve: shutdown: %w", err)
	}

	return nil
}
