// cmd/calib/main.go
package main

import (
	"calib/internal/app"
	"calib/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
