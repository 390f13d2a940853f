package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// slideWriter accumulates the first write error so slides read as plain prints.
type slideWriter struct {
	w   io.Writer
	err error
}

func (s *slideWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *slideWriter) heading(title string) {
	s.printf("\n%s\n", contract.HeadingColor.Sprint(title))
}

// writeWrappedText renders the result as a sequence of terminal slides in deck order.
func writeWrappedText(w io.Writer, result schema.WrappedResult, cfg *contract.Config, duration time.Duration) error {
	s := &slideWriter{w: w}

	s.printf("%s\n", contract.HeadingColor.Sprintf("✨ %s's %d Wrapped", result.Username, result.Year))

	s.heading("👤 Profile")
	s.printf("   Name: %s (@%s)\n", result.Profile.Name, result.Username)
	if result.Profile.Bio != "" {
		s.printf("   Bio: %s\n", contract.TruncateText(result.Profile.Bio, getTerminalWidth(cfg)-8))
	}
	s.printf("   Followers: %d\n", result.Profile.Followers)

	c := result.Contributions
	s.heading("📊 Contributions")
	s.printf("   Total events: %d\n", c.Total)
	s.printf("   Commits: %d | Pull requests: %d | Issues: %d | Reviews: %d\n", c.Commits, c.PRs, c.Issues, c.Reviews)

	s.heading("🎭 Archetype")
	s.printf("   %s [%s]\n", result.Archetype.Name, contract.GetColorRarityLabel(result.Archetype.Rarity))
	s.printf("   %s\n", result.Archetype.Description)

	s.heading("📁 Top Repositories")
	if s.err == nil {
		s.err = writeRepositoryTable(w, result.Repositories)
	}

	s.heading("🧬 Languages")
	if s.err == nil {
		s.err = writeLanguageTable(w, result.Languages, getBarWidth(cfg))
	}

	r := result.Rhythm
	s.heading("⏰ Rhythm")
	s.printf("   Peak hour: %s | Peak day: %s\n", schema.FormatHour(r.PeakHour), r.PeakDay)
	s.printf("   Weekend share: %.0f%% | Longest streak: %d days\n", r.WeekendRatio*100, r.LongestStreak)

	i := result.Impact
	s.heading("🌟 Impact")
	s.printf("   Stars earned: %d | Forks earned: %d\n", i.StarsEarned, i.ForksEarned)
	if i.TopStarredRepo != "" {
		s.printf("   Most starred: %s\n", i.TopStarredRepo)
	}

	co := result.Collaboration
	s.heading("🤝 Collaboration")
	s.printf("   Work style: %s\n", co.WorkStyle.DisplayName())
	s.printf("   External repositories: %d | Diverse projects: %s | Active days: %d\n",
		co.ExternalRepos, yesNo(co.DiverseProjects), co.UniqueDays)

	s.heading("🧾 Summary")
	s.printf("   Total contributions: %d\n", c.Total)
	s.printf("   Repositories active: %d\n", len(result.Repositories))
	s.printf("   Top repository: %s\n", orNone(topRepository(result)))
	s.printf("   Primary language: %s\n", orNone(topLanguage(result)))
	s.printf("   Stars earned: %d\n", i.StarsEarned)

	if cfg.Explain && result.Explanation != nil {
		writeExplanation(s, result.Explanation)
	}

	s.printf("\nWrapped generated in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return s.err
}

// writeExplanation prints the classifier inputs behind the archetype.
func writeExplanation(s *slideWriter, e *schema.ArchetypeExplanation) {
	s.heading("🔍 Why this archetype")
	s.printf("   Matched rule: %s\n", e.Rule)
	s.printf("   Events: %d | Active days: %d | Pushed repos: %d | Languages: %d\n",
		e.TotalEvents, e.UniqueDays, e.RepoCount, e.LanguageDiversity)
	s.printf("   Peak hour: %d | Weekend ratio: %.2f | Burstiness: %.2f | Consistency: %.2f\n",
		e.PeakHour, e.WeekendRatio, e.Burstiness, e.Consistency)
	if e.UsedFallback {
		s.printf("   No events in the requested year, so all fetched events were used\n")
	}
}

func writeRepositoryTable(w io.Writer, repos []schema.RepositoryStat) error {
	if len(repos) == 0 {
		_, err := fmt.Fprintln(w, "   No pushes recorded")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Repository", "Commits", "+Lines", "-Lines"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range schema.RankRepositories(repos) {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			r.Name,
			strconv.Itoa(r.Commits),
			"+" + strconv.Itoa(r.Additions),
			"-" + strconv.Itoa(r.Deletions),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeLanguageTable(w io.Writer, langs []schema.LanguageStat, barWidth int) error {
	if len(langs) == 0 {
		_, err := fmt.Fprintln(w, "   No language data")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Language", "Share", "", "Est. Lines"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, l := range langs {
		data = append(data, []string{
			l.Name,
			fmt.Sprintf("%d%%", l.Percentage),
			renderBar(l.Percentage, barWidth),
			strconv.Itoa(l.LinesWritten),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeWrappedCSV flattens the result into section,key,value rows.
func writeWrappedCSV(w io.Writer, result schema.WrappedResult) error {
	return writeCSVWithHeader(w, []string{"section", "key", "value"}, func(cw *csv.Writer) error {
		for _, rec := range wrappedCSVRecords(result) {
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func wrappedCSVRecords(result schema.WrappedResult) [][]string {
	itoa := strconv.Itoa
	c := result.Contributions
	r := result.Rhythm
	co := result.Collaboration

	records := [][]string{
		{"profile", "username", result.Username},
		{"profile", "name", result.Profile.Name},
		{"profile", "followers", itoa(result.Profile.Followers)},
		{"profile", "year", itoa(result.Year)},
		{"contributions", "total", itoa(c.Total)},
		{"contributions", "commits", itoa(c.Commits)},
		{"contributions", "prs", itoa(c.PRs)},
		{"contributions", "issues", itoa(c.Issues)},
		{"contributions", "reviews", itoa(c.Reviews)},
		{"archetype", "name", result.Archetype.Name},
		{"archetype", "description", result.Archetype.Description},
		{"archetype", "rarity", contract.GetRarityLabel(result.Archetype.Rarity)},
	}

	for _, repo := range schema.RankRepositories(result.Repositories) {
		records = append(records, []string{
			"repositories",
			repo.Name,
			fmt.Sprintf("rank=%d commits=%d additions=%d deletions=%d", repo.Rank, repo.Commits, repo.Additions, repo.Deletions),
		})
	}
	for _, l := range result.Languages {
		records = append(records, []string{
			"languages",
			l.Name,
			fmt.Sprintf("percentage=%d lines=%d", l.Percentage, l.LinesWritten),
		})
	}

	records = append(records,
		[]string{"rhythm", "peak_hour", itoa(r.PeakHour)},
		[]string{"rhythm", "peak_day", r.PeakDay},
		[]string{"rhythm", "weekend_ratio", strconv.FormatFloat(r.WeekendRatio, 'f', 4, 64)},
		[]string{"rhythm", "longest_streak", itoa(r.LongestStreak)},
		[]string{"impact", "stars_earned", itoa(result.Impact.StarsEarned)},
		[]string{"impact", "forks_earned", itoa(result.Impact.ForksEarned)},
		[]string{"impact", "top_starred_repo", result.Impact.TopStarredRepo},
		[]string{"collaboration", "external_repos", itoa(co.ExternalRepos)},
		[]string{"collaboration", "diverse_projects", strconv.FormatBool(co.DiverseProjects)},
		[]string{"collaboration", "work_style", string(co.WorkStyle)},
		[]string{"collaboration", "unique_days", itoa(co.UniqueDays)},
	)

	if e := result.Explanation; e != nil {
		records = append(records,
			[]string{"explanation", "rule", e.Rule},
			[]string{"explanation", "repo_count", itoa(e.RepoCount)},
			[]string{"explanation", "burstiness", strconv.FormatFloat(e.Burstiness, 'f', 4, 64)},
			[]string{"explanation", "consistency", strconv.FormatFloat(e.Consistency, 'f', 4, 64)},
			[]string{"explanation", "used_fallback", strconv.FormatBool(e.UsedFallback)},
		)
	}
	return records
}

func topRepository(result schema.WrappedResult) string {
	if len(result.Repositories) == 0 {
		return ""
	}
	return result.Repositories[0].Name
}

func topLanguage(result schema.WrappedResult) string {
	if len(result.Languages) == 0 {
		return ""
	}
	return result.Languages[0].Name
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
