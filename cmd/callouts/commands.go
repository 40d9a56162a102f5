package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"callouts/internal/callouts"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List callouts",
	Long: `List callouts in the chosen order.

  --view recent   newest first
  --view popular  most liked first, views break ties
  --view all      newest submission first (default)

--word keeps only callouts with a trait containing the word and overrides --view.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a callout and count a view",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a new callout",
	Example: `  callouts submit --title "Thank you" --person Sam \
    --reason "stayed late to help me ship" --category Helpful --category Kind --submitter Lee`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

var likeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a callout, or take the like back",
	Args:  cobra.ExactArgs(1),
	RunE:  runLike,
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Show the most used trait words",
	Args:  cobra.NoArgs,
	RunE:  runWords,
}

var traitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "List the traits you can pick from",
	Args:  cobra.NoArgs,
	RunE:  runTraits,
}

var (
	listView  string
	listWord  string
	listLimit int

	submitInput callouts.SubmitInput
)

func init() {
	listCmd.Flags().StringVar(&listView, "view", "all", "ordering: recent, popular or all")
	listCmd.Flags().StringVar(&listWord, "word", "", "only callouts with a trait containing this word")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of callouts (0 for all)")

	submitCmd.Flags().StringVar(&submitInput.Title, "title", "", "short display title")
	submitCmd.Flags().StringVar(&submitInput.Person, "person", "", "who you are calling out")
	submitCmd.Flags().StringVar(&submitInput.Reason, "reason", "", "why they deserve it")
	submitCmd.Flags().StringArrayVar((*[]string)(&submitInput.Categories), "category", nil, "a trait (repeat up to 3 times)")
	submitCmd.Flags().StringVar(&submitInput.Submitter, "submitter", "", "your name")
	submitCmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return callouts.Traits, cobra.ShellCompDirectiveNoFileComp
	})
}

func runList(cmd *cobra.Command, args []string) error {
	view, err := callouts.ParseView(listView)
	if err != nil {
		return err
	}

	svc, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	list, err := svc.List(cmd.Context(), callouts.ListQuery{View: view, Word: listWord, Limit: listLimit})
	if err != nil {
		return err
	}
	tracker, err := svc.Likes(cmd.Context(), localSession)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		if listWord != "" {
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("No Character-Callouts found with the word %q.", listWord)))
		} else {
			fmt.Fprintln(out, mutedStyle.Render("No Character-Callouts yet. Be the first to submit one!"))
		}
		return nil
	}
	for _, c := range list {
		printCard(out, c, tracker.IsLiked(c.ID), false)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	id := args[0]
	if _, err := svc.RecordView(cmd.Context(), id); err != nil {
		return notFound(err, id)
	}
	c, err := svc.GetByID(cmd.Context(), id)
	if err != nil {
		return notFound(err, id)
	}
	tracker, err := svc.Likes(cmd.Context(), localSession)
	if err != nil {
		return err
	}

	printCard(cmd.OutOrStdout(), *c, tracker.IsLiked(c.ID), true)
	return nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	c, err := svc.Submit(cmd.Context(), submitInput)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Submitted callout %s\n", titleStyle.Render(c.ID))
	return nil
}

func runLike(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	res, err := svc.ToggleLike(cmd.Context(), localSession, args[0])
	if err != nil {
		return notFound(err, args[0])
	}

	verb := "Unliked"
	if res.Liked {
		verb = "Liked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, args[0], likedStyle.Render(fmt.Sprintf("♥ %d", res.Likes)))
	return nil
}

func runWords(cmd *cobra.Command, args []string) error {
	svc, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	cloud, err := svc.WordCloud(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cloud.Placeholder {
		fmt.Fprintln(out, mutedStyle.Render("No traits yet, some ideas:"))
	}
	for _, w := range cloud.Words {
		fmt.Fprintf(out, "%-20s %s\n", traitStyle.Render(w.Word), mutedStyle.Render(fmt.Sprint(w.Freq)))
	}
	return nil
}

func runTraits(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, t := range callouts.Traits {
		fmt.Fprintln(out, t)
	}
	return nil
}

func notFound(err error, id string) error {
	if errors.Is(err, callouts.ErrCalloutNotFound) {
		return fmt.Errorf("no callout with id %s", id)
	}
	return err
}

func printCard(w io.Writer, c callouts.Callout, liked, full bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", titleStyle.Render(c.Title), mutedStyle.Render("#"+c.ID))
	fmt.Fprintf(&b, "%s for being %s\n", personStyle.Render(c.Person), traitStyle.Render(strings.Join(c.Categories, ", ")))
	if full {
		fmt.Fprintf(&b, "\n%s\n\n", c.Reason)
	}
	heart := mutedStyle.Render(fmt.Sprintf("♡ %d", c.Likes))
	if liked {
		heart = likedStyle.Render(fmt.Sprintf("♥ %d", c.Likes))
	}
	fmt.Fprintf(&b, "%s  %s  %s",
		mutedStyle.Render("by "+c.Submitter+" on "+c.Date.Local().Format("Jan 2, 2006")),
		mutedStyle.Render(fmt.Sprintf("%d views", c.Views)),
		heart)
	fmt.Fprintln(w, cardStyle.Render(b.String()))
}
