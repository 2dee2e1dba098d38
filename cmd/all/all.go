// Package all imports all the commands
package all

import (
	// Active commands
	_ "github.com/cldimg/cldimg/cmd"
	_ "github.com/cldimg/cldimg/cmd/build"
	_ "github.com/cldimg/cldimg/cmd/config"
	_ "github.com/cldimg/cldimg/cmd/extract"
	_ "github.com/cldimg/cldimg/cmd/img"
	_ "github.com/cldimg/cldimg/cmd/serve"
	_ "github.com/cldimg/cldimg/cmd/version"
)
