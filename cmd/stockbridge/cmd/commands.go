package cmd

import (
	"stockbridge/cmd/stockbridge/cmd/devices"
	"stockbridge/cmd/stockbridge/cmd/files"
	"stockbridge/cmd/stockbridge/cmd/sync"
)

func init() {
	rootCmd.AddCommand(devices.DevicesCmd)
	devices.DevicesCmd.AddCommand(devices.ListCmd)
	devices.DevicesCmd.AddCommand(devices.InfoCmd)
	devices.DevicesCmd.AddCommand(devices.AuthorizeCmd)

	rootCmd.AddCommand(files.FilesCmd)
	files.FilesCmd.AddCommand(files.LsCmd)
	files.FilesCmd.AddCommand(files.PullCmd)
	files.FilesCmd.AddCommand(files.PushCmd)
	files.FilesCmd.AddCommand(files.MkdirCmd)
	files.FilesCmd.AddCommand(files.RmCmd)

	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(doctorCmd)
}
