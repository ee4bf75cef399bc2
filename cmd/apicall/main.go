// Command apicall issues authenticated requests against the API.
//
//	API_URL=https://payroll.example.com API_TOKEN=... apicall get /api/tools
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Error().Err(err).Msg("apicall failed")
		os.Exit(1)
	}
}
