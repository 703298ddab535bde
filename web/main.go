package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/df07/go-whitted-raytracer/web/server"
)

var (
	port      int
	scenesDir string
)

var cmdRoot = &cobra.Command{
	Use:          "whitted-web",
	Short:        "Serve the Whitted raytracer over HTTP",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		webServer := server.NewServer(port, scenesDir)

		glog.Infof("Whitted Raytracer Web Server")
		glog.Infof("Visit http://localhost:%d to start rendering", port)

		return webServer.Start()
	},
}

func init() {
	cmdRoot.Flags().IntVar(&port, "port", 8080, "Port to serve on")
	cmdRoot.Flags().StringVar(&scenesDir, "scenes", "scenes", "Directory of .scene files to offer")
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	if err := cmdRoot.Execute(); err != nil {
		glog.Errorf("Error starting server: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
