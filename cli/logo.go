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

const logo = `
 .d8888b.                                             888 8888888b.  888888b.   
d88P  Y88b                                            888 888  "Y88b 888  "88b  
Y88b.                                                 888 888    888 888  .88P  
 "Y888b.   888  888 888d888 888d888  .d88b.   8888b.  888 888    888 8888888K.  
    "Y88b. 888  888 888P"   888P"   d8P  Y8b     "88b 888 888    888 888  "Y88b 
      "888 888  888 888     888     88888888 .d888888 888 888    888 888    888 
Y88b  d88P Y88b 888 888     888     Y8b.     888  888 888 888  .d88P 888   d88P 
 "Y8888P"   "Y88888 888     888      "Y8888  "Y888888 888 8888888P"  8888888P"  

`
