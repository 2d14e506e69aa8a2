package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	v1 "github.com/emrgen/jobpost/apis/v1"
	"github.com/emrgen/jobpost/block/render"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "job post commands",
}

func init() {
	bindContextFlags(postCmd)
	postCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	postCmd.AddCommand(createPostCmd())
	postCmd.AddCommand(getPostCmd())
	postCmd.AddCommand(listPostsCmd())
	postCmd.AddCommand(updatePostCmd())
	postCmd.AddCommand(deletePostCmd())
	postCmd.AddCommand(renderPostCmd())
	postCmd.AddCommand(listRevisionsCmd())
	postCmd.AddCommand(restoreRevisionCmd())
	postCmd.AddCommand(eligibilityCmd())
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func createPostCmd() *cobra.Command {
	var file string

	var required = []string{"file"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a job post",
		Long:    `create a job post from a json or yaml file holding the post fields and its blocks`,
		Example: "jobpost post create -f post.yaml",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			var in v1.JobPostInput
			if err := readFile(file, &in); err != nil {
				logrus.Error(err)
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			res, err := newClient(cmd).CreateJobPost(ctx, &in)
			if err != nil {
				logrus.Error(err)
				return
			}

			printPosts(res.JobPost)
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "post file (.json, .yaml)")

	return command
}

func getPostCmd() *cobra.Command {
	var id uint64
	var asJSON bool

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a job post",
		Example: "jobpost post get -i <post-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			res, err := newClient(cmd).GetJobPost(ctx, id)
			if err != nil {
				logrus.Error(err)
				return
			}

			if asJSON {
				if err := printJSON(res.JobPost); err != nil {
					logrus.Error(err)
				}
				return
			}

			printPosts(res.JobPost)
		},
	}

	command.Flags().Uint64VarP(&id, "id", "i", 0, "post id")
	command.Flags().BoolVar(&asJSON, "json", false, "print the full post as json")

	return command
}

func listPostsCmd() *cobra.Command {
	var category string

	command := &cobra.Command{
		Use:     "list",
		Short:   "list job posts",
		Example: "jobpost post list -c latestJobs",
		Run: func(cmd *cobra.Command, args []string) {
			var filter *v1.Category
			if category != "" {
				c := v1.Category(category)
				if !c.Valid() {
					color.Red("unknown category: %s", category)
					return
				}
				filter = &c
			}

			ctx, cancel := requestContext()
			defer cancel()

			res, err := newClient(cmd).ListJobPosts(ctx, filter)
			if err != nil {
				logrus.Error(err)
				return
			}

			printPosts(res.JobPosts...)
		},
	}

	command.Flags().StringVarP(&category, "category", "c", "", "latestJobs, results, closedPosts or admitCards")

	return command
}

func updatePostCmd() *cobra.Command {
	var id uint64
	var file string
	var version int64

	var required = []string{"id", "file"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "replace a job post",
		Long:    `replace the fields and blocks of a job post; with --version the update fails if the post changed since`,
		Example: "jobpost post update -i <post-id> -f post.yaml -v 3",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			var in v1.JobPostInput
			if err := readFile(file, &in); err != nil {
				logrus.Error(err)
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			res, err := newClient(cmd).UpdateJobPost(ctx, id, version, &in)
			if err != nil {
				logrus.Error(err)
				return
			}

			printPosts(res.JobPost)
		},
	}

	command.Flags().Uint64VarP(&id, "id", "i", 0, "post id")
	command.Flags().StringVarP(&file, "file", "f", "", "post file (.json, .yaml)")
	command.Flags().Int64VarP(&version, "version", "v", 0, "expected current version")

	return command
}

func deletePostCmd() *cobra.Command {
	var id uint64

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a job post",
		Example: "jobpost post delete -i <post-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			if _, err := newClient(cmd).DeleteJobPost(ctx, id); err != nil {
				logrus.Error(err)
				return
			}

			color.Green("deleted post %d", id)
		},
	}

	command.Flags().Uint64VarP(&id, "id", "i", 0, "post id")

	return command
}

func renderPostCmd() *cobra.Command {
	var id uint64
	var format string
	var style string
	var width int

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "render",
		Short:   "render a job post body",
		Long:    `render a job post body as html, markdown or styled terminal output`,
		Example: "jobpost post render -i <post-id> -f terminal",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			client := newClient(cmd)
			if format == "terminal" {
				res, err := client.GetJobPost(ctx, id)
				if err != nil {
					logrus.Error(err)
					return
				}

				out, err := render.Terminal(res.JobPost.Blocks, style, width)
				if err != nil {
					logrus.Error(err)
					return
				}
				fmt.Print(out)
				return
			}

			res, err := client.RenderJobPost(ctx, id, v1.RenderFormat(format))
			if err != nil {
				logrus.Error(err)
				return
			}
			fmt.Println(res.Content)
		},
	}

	command.Flags().Uint64VarP(&id, "id", "i", 0, "post id")
	command.Flags().StringVarP(&format, "format", "f", "terminal", "html, markdown or terminal")
	command.Flags().StringVar(&style, "style", "dark", "terminal style")
	command.Flags().IntVar(&width, "width", 80, "terminal width")

	return command
}

func listRevisionsCmd() *cobra.Command {
	var id uint64

	var required = []string{"id"}

	command := &cobra.Command{
		Use:     "revisions",
		Short:   "list the revisions of a job post",
		Example: "jobpost post revisions -i <post-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			res, err := newClient(cmd).ListJobPostRevisions(ctx, id)
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Version", "Name", "Blocks", "Created At"})
			for _, rev := range res.Revisions {
				name, blocks := "", 0
				if rev.JobPost != nil {
					name, blocks = rev.JobPost.Name, len(rev.JobPost.Blocks)
				}
				table.Append([]string{
					strconv.FormatInt(rev.Version, 10),
					name,
					strconv.Itoa(blocks),
					rev.CreatedAt.Format(time.DateTime),
				})
			}
			table.Render()
		},
	}

	command.Flags().Uint64VarP(&id, "id", "i", 0, "post id")

	return command
}

func restoreRevisionCmd() *cobra.Command {
	var id uint64
	var version int64

	var required = []string{"id", "version"}

	command := &cobra.Command{
		Use:     "restore",
		Short:   "restore a job post revision",
		Example: "jobpost post restore -i <post-id> -v <version>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			res, err := newClient(cmd).RestoreJobPostRevision(ctx, id, version)
			if err != nil {
				logrus.Error(err)
				return
			}

			printPosts(res.JobPost)
		},
	}

	command.Flags().Uint64VarP(&id, "id", "i", 0, "post id")
	command.Flags().Int64VarP(&version, "version", "v", 0, "revision version")

	return command
}

func eligibilityCmd() *cobra.Command {
	var id uint64
	var dob string
	var asOf string

	var required = []string{"id", "dob"}

	command := &cobra.Command{
		Use:     "eligibility",
		Short:   "check the age limit of a job post",
		Example: "jobpost post eligibility -i <post-id> --dob 2000-01-15",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			ctx, cancel := requestContext()
			defer cancel()

			res, err := newClient(cmd).CheckEligibility(ctx, &v1.CheckEligibilityRequest{ID: id, DateOfBirth: dob, AsOf: asOf})
			if err != nil {
				logrus.Error(err)
				return
			}

			age := fmt.Sprintf("%d years, %d months, %d days", res.Age.Years, res.Age.Months, res.Age.Days)
			if res.Eligible {
				color.Green("eligible (%s)", age)
				return
			}
			color.Red("not eligible (%s): %s", age, res.Reason)
		},
	}

	command.Flags().Uint64VarP(&id, "id", "i", 0, "post id")
	command.Flags().StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	command.Flags().StringVar(&asOf, "as-of", "", "reference date, defaults to the post's last date")

	return command
}

func printPosts(posts ...*v1.JobPost) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Category", "Last Date", "Blocks", "Version"})
	for _, post := range posts {
		lastDate := ""
		if post.ImportantDates.LastDate != nil {
			lastDate = *post.ImportantDates.LastDate
		}
		table.Append([]string{
			strconv.FormatUint(post.ID, 10),
			post.Name,
			string(post.Category),
			lastDate,
			strconv.Itoa(len(post.Blocks)),
			strconv.FormatInt(post.Version, 10),
		})
	}
	table.Render()
}
