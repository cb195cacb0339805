package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yungbote/restkit-backend/internal/app"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Print the DTO class and form type each action resolves to",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New("test")
		if err != nil {
			return err
		}
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			file = os.Getenv("REST_CLASSES_FILE")
		}
		ctrls, err := app.OfflineControllers(log, file)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CONTROLLER\tKEY\tDTO CLASS\tFORM TYPE")
		for _, row := range app.ClassReport(ctrls) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Controller, row.Key, row.DTOClass, row.FormType)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
	classesCmd.Flags().StringP("file", "f", "", "Classes YAML file (defaults to REST_CLASSES_FILE)")
}
