package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/MacarenaGarciaM/Tingeso1/config"
	"github.com/MacarenaGarciaM/Tingeso1/httpclient"
	"github.com/MacarenaGarciaM/Tingeso1/internal/logging"
	"github.com/MacarenaGarciaM/Tingeso1/session"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// envToken is read at run time so the token never shows up as a flag default in help.
const envToken = "API_TOKEN"

type rootOptions struct {
	configPath string
	token      string
	baseURL    string
	verbose    bool

	// transport replaces the network transport; tests only.
	transport http.RoundTripper
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newRootCmdWithOptions(&rootOptions{}, out)
}

func newRootCmdWithOptions(opts *rootOptions, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apicall",
		Short:         "Send requests to the API with the current bearer token",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "access token (defaults to $"+envToken+")")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "override the API base URL")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each request")

	cmd.AddCommand(newGetCmd(opts, out))

	return cmd
}

func newGetCmd(opts *rootOptions, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "GET a path relative to the API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.buildClient(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			resp, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			logger.Debug().
				Str("url", resp.Request.URL.Redacted()).
				Int("status", resp.StatusCode).
				Msg("response received")

			fmt.Fprintln(out, resp.Status)
			if _, err := io.Copy(out, resp.Body); err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			return nil
		},
	}
}

func (o *rootOptions) buildClient(logOut io.Writer) (*httpclient.Client, *zerolog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(o.baseURL) != "" {
		cfg.API.URL = strings.TrimSpace(o.baseURL)
	}

	level := cfg.Log.Level
	if o.verbose {
		level = "debug"
	}
	logger := logging.NewConsole(level, logOut)

	token := o.token
	if token == "" {
		token = os.Getenv(envToken)
	}

	kc := session.NewKeycloak(session.WithLogger(&logger))
	if token != "" {
		kc.SetToken(token)
	}

	builder := cfg.Builder().
		WithSession(kc).
		WithLogger(&logger)
	if o.transport != nil {
		builder = builder.WithBaseTransport(o.transport)
	}

	client, err := builder.Build()
	if err != nil {
		return nil, nil, err
	}

	logger.Debug().
		Str("base_url", client.BaseURL().String()).
		Bool("authenticated", kc.Authenticated()).
		Str("subject", kc.Subject()).
		Msg("client ready")

	return client, &logger, nil
}
