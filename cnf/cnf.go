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

package cnf

import "time"

// Options defines global configuration options for the server.
type Options struct {

	DB struct {
		Path string // Root storage directory; one subdirectory per database
	}

	Conn struct {
		Web string // host:port the HTTP server listens on
	}

	Auth struct {
		Secret     string        // HMAC key used to sign access and refresh tokens
		AccessTTL  time.Duration // Access token lifetime
		RefreshTTL time.Duration // Refresh token lifetime
		UserFile   string        // Path to the user credential store (CSV of user,bcrypt-hash)
	}

	Logging struct {
		Level  string // Configured logging level
		Output string // Configured logging output
		Format string // Configured logging format
	}
}
