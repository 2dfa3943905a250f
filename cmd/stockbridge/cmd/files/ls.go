package files

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var LsCmd = &cobra.Command{
	Use:   "ls <device-id> [path]",
	Short: "Содержимое директории на устройстве",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		dir := "/sdcard"
		if len(args) == 2 {
			dir = args[1]
		}

		files := a.Transport.ListFiles(cmd.Context(), args[0], dir)
		out := cmd.OutOrStdout()

		if output.JSON(cmd) {
			return output.PrintJSON(out, files)
		}

		if len(files) == 0 {
			fmt.Fprintf(out, "Директория %s пуста или недоступна.\n", dir)
			return nil
		}

		w := output.Table(out)
		for _, f := range files {
			name := f.Name
			if f.IsDirectory {
				name += "/"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				f.Permissions, output.Size(f.Size), f.ModifiedAt.Format("2006-01-02 15:04"), name)
		}
		return w.Flush()
	},
}
