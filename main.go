// whitted renders a scene of triangles and glass spheres with a Whitted-style
// ray tracer and shows it in a window or writes it to an image file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-whitted-raytracer/internal/viewer"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const defaultOutput = "image.ppm"

// options holds the command line flags
type options struct {
	file       string
	sceneName  string
	rows       int
	cols       int
	seed       int64
	noDisplay  bool
	output     string
	configFile string

	width    int
	height   int
	fov      float64
	depth    int
	workers  int
	tileSize int
}

var opts options

var cmdRoot = &cobra.Command{
	Use:          "whitted",
	Short:        "Render triangles and glass spheres with a Whitted ray tracer",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(opts, cmd.Flags())
	},
}

func init() {
	bindFlags(cmdRoot.Flags(), &opts)
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// bindFlags registers the render flags on flags, storing values in o
func bindFlags(flags *pflag.FlagSet, o *options) {
	defaults := renderer.DefaultConfig()
	grid := scene.DefaultOptions()

	flags.StringVarP(&o.file, "file", "f", "", "Scene file to load (s/t/l records)")
	flags.StringVar(&o.sceneName, "scene", "", fmt.Sprintf("Built-in scene %v (default \"default\" without --file)", scene.Names()))
	flags.IntVar(&o.rows, "row", grid.Rows, "Rows of the generated sphere grid")
	flags.IntVar(&o.cols, "col", grid.Cols, "Columns of the generated sphere grid")
	flags.Int64Var(&o.seed, "seed", grid.Seed, "Seed for sphere depths and wall colors")
	flags.BoolVarP(&o.noDisplay, "no-display", "n", false, "Write the image instead of opening a window")
	flags.StringVarP(&o.output, "output", "o", defaultOutput, "Output image (.ppm or .png)")
	flags.StringVar(&o.configFile, "config", "", "YAML render config file")

	flags.IntVar(&o.width, "width", defaults.Width, "Image width in pixels")
	flags.IntVar(&o.height, "height", defaults.Height, "Image height in pixels")
	flags.Float64Var(&o.fov, "fov", defaults.FOV, "Vertical field of view in degrees")
	flags.IntVar(&o.depth, "depth", defaults.MaxDepth, "Maximum reflection/refraction depth")
	flags.IntVar(&o.workers, "workers", defaults.Workers, "Parallel workers (0 = CPU count)")
	flags.IntVar(&o.tileSize, "tile-size", defaults.TileSize, "Tile size in pixels")
}

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	if err := cmdRoot.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}

func run(o options, flags *pflag.FlagSet) error {
	s, err := buildScene(o)
	if err != nil {
		return err
	}

	config, err := renderConfig(o, flags)
	if err != nil {
		return err
	}

	glog.Infof("Scene: %d triangles, %d spheres, %d lights", len(s.Triangles), len(s.Spheres), len(s.Lights))
	r := renderer.NewRenderer(config, s, nil)

	if !o.noDisplay {
		var fb *renderer.Framebuffer
		err := viewer.Run("Whitted Raytracer", config.Width, config.Height, func(onTile func(renderer.TileCompletionResult)) error {
			var renderErr error
			fb, _, renderErr = r.Render(onTile)
			return renderErr
		})
		switch {
		case errors.Is(err, viewer.ErrClosedEarly):
			glog.Info(err)
			return nil
		case err == nil:
			if flags.Changed("output") {
				return saveRender(o.output, fb)
			}
			return nil
		default:
			glog.Warningf("Display unavailable (%v), writing %s instead", err, o.output)
		}
	}

	fb, _, err := r.Render(nil)
	if err != nil {
		return err
	}
	return saveRender(o.output, fb)
}

// buildScene loads the scene file, if any, and merges in the built-in scene.
// Without a file the built-in scene defaults to "default".
func buildScene(o options) (*scene.Scene, error) {
	name := o.sceneName
	if name == "" && o.file == "" {
		name = "default"
	}

	s := scene.New()
	if o.file != "" {
		loaded, err := loaders.LoadScene(o.file)
		if err != nil {
			return nil, err
		}
		glog.Infof("Loaded %s: %d primitives, %d lights", o.file, loaded.GetPrimitiveCount(), len(loaded.Lights))
		s.Merge(loaded)
	}

	if name != "" {
		builtin, err := scene.ByName(name, scene.Options{Rows: o.rows, Cols: o.cols, Seed: o.seed})
		if err != nil {
			return nil, fmt.Errorf("while building scene: %w", err)
		}
		s.Merge(builtin)
	}

	return s, nil
}

// renderConfig layers the config file and then explicitly set flags over the defaults
func renderConfig(o options, flags *pflag.FlagSet) (renderer.Config, error) {
	config := renderer.DefaultConfig()

	if o.configFile != "" {
		var err error
		if config, err = loaders.LoadRenderConfig(o.configFile, config); err != nil {
			return config, err
		}
	}

	if flags.Changed("width") {
		config.Width = o.width
	}
	if flags.Changed("height") {
		config.Height = o.height
	}
	if flags.Changed("fov") {
		config.FOV = o.fov
	}
	if flags.Changed("depth") {
		config.MaxDepth = o.depth
	}
	if flags.Changed("workers") {
		config.Workers = o.workers
	}
	if flags.Changed("tile-size") {
		config.TileSize = o.tileSize
	}

	return config, config.Validate()
}

func saveRender(filename string, fb *renderer.Framebuffer) error {
	if fb == nil {
		return fmt.Errorf("no image to save")
	}
	if err := loaders.SaveImage(filename, fb); err != nil {
		return err
	}
	if abs, err := filepath.Abs(filename); err == nil {
		filename = abs
	}
	glog.Infof("Render saved as %s", filename)
	return nil
}
