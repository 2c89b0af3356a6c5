// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abcum/rowdb/cnf"
	"github.com/abcum/rowdb/log"
)

var opts *cnf.Options

var mainCmd = &cobra.Command{
	Use:   "rowdb",
	Short: "A miniature networked SQL-subset query engine",
}

func init() {

	opts = &cnf.Options{}

	mainCmd.AddCommand(
		startCmd,
		userAddCmd,
		versionCmd,
	)

	mainCmd.PersistentFlags().StringVar(&opts.DB.Path, "db-path", "", "Root storage directory, one subdirectory per database.")
	mainCmd.PersistentFlags().StringVar(&opts.Conn.Web, "bind", ":8000", "The host:port on which to serve the query API.")
	mainCmd.PersistentFlags().StringVar(&opts.Auth.Secret, "auth-secret", "", "HMAC key used to sign access and refresh tokens.")
	mainCmd.PersistentFlags().StringVar(&opts.Auth.UserFile, "user-file", "user.csv", "Path to the user credential store.")
	mainCmd.PersistentFlags().DurationVar(&opts.Auth.AccessTTL, "auth-access-ttl", 15*time.Minute, "Access token lifetime.")
	mainCmd.PersistentFlags().DurationVar(&opts.Auth.RefreshTTL, "auth-refresh-ttl", 7*24*time.Hour, "Refresh token lifetime.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Level, "log-level", "info", "Logging level.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Output, "log-output", "stdout", "Logging output.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Format, "log-format", "text", "Logging format.")

	cobra.OnInitialize(setup)

}

func setup() {
	log.SetLevel(opts.Logging.Level)
	log.SetOutput(opts.Logging.Output)
	log.SetFormat(opts.Logging.Format)
}

// Run runs the cli app.
func Run() {
	if err := mainCmd.Execute(); err != nil {
		log.Fatal(err)
		os.Exit(-1)
	}
}
