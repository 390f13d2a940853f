package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeCatalogTable renders the archetype catalog in rule priority order.
func writeCatalogTable(w io.Writer, entries []schema.CatalogEntry) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Priority", "Archetype", "Rarity", "Rule", "Description"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			strconv.Itoa(e.Priority),
			e.Name,
			contract.GetColorRarityLabel(e.Rarity),
			e.Rule,
			e.Description,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeCatalogCSV(w io.Writer, entries []schema.CatalogEntry) error {
	header := []string{"priority", "key", "name", "rarity", "rule", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range entries {
			rec := []string{
				strconv.Itoa(e.Priority),
				e.Key,
				e.Name,
				contract.GetRarityLabel(e.Rarity),
				e.Rule,
				e.Description,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
