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
	"golang.org/x/term"

	"github.com/abcum/rowdb/auth"
	"github.com/abcum/rowdb/log"
)

var userAddCmd = &cobra.Command{
	Use:   "user-add [username]",
	Short: "Add a user to the credential store, prompting for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		username := args[0]

		fmt.Print("Password: ")
		pass, err := term.ReadPassword(0)
		fmt.Println()
		if err != nil {
			log.Fatal(err)
			return err
		}

		mgr, err := auth.New(auth.Options{UserFile: opts.Auth.UserFile})
		if err != nil {
			log.Fatal(err)
			return err
		}

		if err := mgr.Signup(username, string(pass)); err != nil {
			log.Fatal(err)
			return err
		}

		fmt.Printf("User %q added\n", username)

		return nil

	},
}
