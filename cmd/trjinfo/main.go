/*
 * trjinfo prints the shape of an Amber ASCII trajectory: atoms, frames,
 * periodicity, and optionally one frame's contents. The atom count comes
 * from a prmtop topology or from an explicit flag, since the trajectory
 * format does not carry it.
 */

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mdlab-go/amberio"
	"github.com/mdlab-go/amberio/traj/amber"
)

var (
	topFile  string
	atoms    int
	periodic string
	frame    int
)

func main() {
	root := &cobra.Command{
		Use:          "trjinfo [flags] trajectory",
		Short:        "inspect an Amber ASCII trajectory (plain, gzip, bzip2 or zstd)",
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}
	root.Flags().StringVarP(&topFile, "top", "t", "", "prmtop topology matching the trajectory")
	root.Flags().IntVarP(&atoms, "atoms", "n", 0, "atom count, if no topology is given")
	root.Flags().StringVar(&periodic, "periodic", "auto", "box records: auto, on or off")
	root.Flags().IntVarP(&frame, "frame", "f", -1, "also dump this frame's coordinates")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	n := atoms
	if topFile != "" {
		top, err := amberio.PRMRead(topFile)
		if err != nil {
			return err
		}
		n = top.Len()
		log.Info("topology loaded", "file", topFile, "atoms", n, "periodic-hint", top.Periodic())
	}
	if n <= 0 {
		return fmt.Errorf("either --top or a positive --atoms is required")
	}
	var traj *amber.Reader
	var err error
	switch periodic {
	case "auto":
		traj, err = amber.New(args[0], n)
	case "on":
		traj, err = amber.New(args[0], n, true)
	case "off":
		traj, err = amber.New(args[0], n, false)
	default:
		return fmt.Errorf("--periodic must be auto, on or off, not %q", periodic)
	}
	if err != nil {
		return err
	}
	defer traj.Close()

	fmt.Printf("title:    %s\n", traj.Title())
	fmt.Printf("atoms:    %d\n", traj.Len())
	fmt.Printf("frames:   %d\n", traj.NFrames())
	fmt.Printf("periodic: %v\n", traj.Periodic())
	if traj.Periodic() {
		b := traj.Current().Box()
		fmt.Printf("box[0]:   %.3f %.3f %.3f  %.1f %.1f %.1f\n", b[0], b[1], b[2], b[3], b[4], b[5])
	}
	if frame < 0 {
		return nil
	}
	ts, err := traj.Seek(frame)
	if err != nil {
		return err
	}
	coords := ts.Coords()
	fmt.Printf("frame %d:\n", ts.Frame())
	for i := 0; i < coords.NVecs(); i++ {
		fmt.Printf("%8.3f%8.3f%8.3f\n", coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
	}
	return nil
}
