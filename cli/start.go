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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abcum/rowdb/auth"
	"github.com/abcum/rowdb/catalog"
	"github.com/abcum/rowdb/log"
	"github.com/abcum/rowdb/server"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Load the catalog and start the query server",
	PreRun: func(cmd *cobra.Command, args []string) {
		fmt.Print(logo)
	},
	RunE: func(cmd *cobra.Command, args []string) error {

		cat, err := catalog.Load(opts.DB.Path)
		if err != nil {
			log.Fatal(err)
			return err
		}

		mgr, err := auth.New(auth.Options{
			Secret:     opts.Auth.Secret,
			AccessTTL:  opts.Auth.AccessTTL,
			RefreshTTL: opts.Auth.RefreshTTL,
			UserFile:   opts.Auth.UserFile,
		})
		if err != nil {
			log.Fatal(err)
			return err
		}

		return server.Run(opts, cat, mgr)

	},
}
