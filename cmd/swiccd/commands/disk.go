package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swiccgo/swicc/pkg/diskjson"
	"github.com/swiccgo/swicc/pkg/fs"
)

var diskCmd = &cobra.Command{
	Use:   "disk",
	Short: "Inspect and convert disk images",
}

var diskValidateFormat string

var diskValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Load a disk image and report whether it is well-formed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiskValidate,
}

var (
	diskConvertFrom string
	diskConvertTo   string
)

var diskConvertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a disk image between JSON and binary form",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiskConvert,
}

func init() {
	diskValidateCmd.Flags().StringVar(&diskValidateFormat, "format", "binary", "input format: binary|json")
	diskConvertCmd.Flags().StringVar(&diskConvertFrom, "from", "json", "input format: binary|json")
	diskConvertCmd.Flags().StringVar(&diskConvertTo, "to", "binary", "output format: binary|json")

	diskCmd.AddCommand(diskValidateCmd)
	diskCmd.AddCommand(diskConvertCmd)
}

func runDiskValidate(cmd *cobra.Command, args []string) error {
	disk, err := loadDisk(args[0], diskValidateFormat)
	if err != nil {
		return fmt.Errorf("invalid disk: %w", err)
	}

	root, err := disk.Root.RootFile()
	if err != nil {
		return fmt.Errorf("invalid disk root: %w", err)
	}

	trees := 0
	for t := disk.Root; t != nil; t = t.Next {
		trees++
	}
	cmd.Printf("OK: %d tree(s), root id=%04X\n", trees, root.ID)
	return nil
}

func runDiskConvert(cmd *cobra.Command, args []string) error {
	if diskConvertTo != "binary" {
		return fmt.Errorf("unsupported output format %q: only \"binary\" is supported", diskConvertTo)
	}

	in := args[0]
	out := args[1]

	var disk *fs.Disk
	var err error
	switch diskConvertFrom {
	case "json":
		f, ferr := os.Open(in)
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		disk, err = diskjson.Decode(f)
	case "binary":
		f, ferr := os.Open(in)
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		disk, err = fs.Load(f)
	default:
		return fmt.Errorf("unknown input format %q", diskConvertFrom)
	}
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", in, err)
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := disk.Save(w); err != nil {
		return fmt.Errorf("failed to write %q: %w", out, err)
	}

	cmd.Printf("wrote %s\n", out)
	return nil
}
