// Command dlg3 inspects USGS DLG-3 optional-format files.
//
// Usage:
//
//	dlg3 [flags] headers <file>
//	dlg3 [flags] show <file>
//	dlg3 [flags] attrs <file|category-dir>
//	dlg3 [flags] find <category-dir> <major> <minor>
//	dlg3 [flags] tree <file>
//	dlg3 [flags] summary <file>
//	dlg3 [flags] bbox <file>
//	dlg3 [flags] dump <file>
//	dlg3 [flags] geojson <file>
//	dlg3 [flags] index [root]
//	dlg3 [flags] viewport <min-lat> <max-lat> <min-long> <max-long>
//
// Flags may also be set through DLG3_* environment variables or a .env file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/beetlebugorg/dlg3/internal/config"
	"github.com/beetlebugorg/dlg3/pkg/dlg3"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("dlg3: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

var errUsage = errors.New("usage: dlg3 [flags] headers|show|attrs|find|tree|summary|bbox|dump|geojson|index|viewport ...")

type command struct {
	cfg    *config.Config
	parser dlg3.Parser
	out    io.Writer
}

func run(args []string, out io.Writer) error {
	cfg, rest, err := config.Load(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errUsage
	}
	c := &command{cfg: cfg, parser: dlg3.NewParser(), out: out}

	name, args := rest[0], rest[1:]
	switch name {
	case "headers":
		return c.withPath(args, c.headers)
	case "show":
		return c.withFile(args, func(f *dlg3.File) error {
			_, err := io.WriteString(c.out, f.ShowAll())
			return err
		})
	case "attrs":
		return c.withPath(args, c.attrs)
	case "find":
		return c.find(args)
	case "tree":
		return c.withFile(args, func(f *dlg3.File) error {
			_, err := io.WriteString(c.out, f.IslandTree().Format())
			return err
		})
	case "summary":
		return c.withFile(args, func(f *dlg3.File) error {
			return dlg3.WriteJSON(c.out, f.Report())
		})
	case "bbox":
		return c.withFile(args, c.bbox)
	case "dump":
		return c.withPath(args, c.dump)
	case "geojson":
		return c.withFile(args, func(f *dlg3.File) error {
			fc, err := f.FeatureCollection()
			if err != nil {
				return err
			}
			return dlg3.WriteJSON(c.out, fc)
		})
	case "index":
		return c.index(args)
	case "viewport":
		return c.viewport(args)
	default:
		return fmt.Errorf("unknown command %q\n%w", name, errUsage)
	}
}

func (c *command) parseOptions() dlg3.ParseOptions {
	opts := dlg3.DefaultParseOptions()
	if c.cfg.NoValidate {
		opts.ValidateIDs = false
		opts.ValidateLinkage = false
	}
	return opts
}

func (c *command) loadOptions() dlg3.LoadOptions {
	opts := dlg3.DefaultLoadOptions()
	opts.Parallel = !c.cfg.Serial
	opts.Workers = c.cfg.Workers
	opts.ErrorLog = log.Writer()
	opts.Parse = c.parseOptions()
	return opts
}

func (c *command) withPath(args []string, fn func(path string) error) error {
	if len(args) != 1 {
		return errUsage
	}
	return fn(args[0])
}

func (c *command) withFile(args []string, fn func(f *dlg3.File) error) error {
	return c.withPath(args, func(path string) error {
		f, err := c.parser.ParseWithOptions(path, c.parseOptions())
		if err != nil {
			return err
		}
		return fn(f)
	})
}

func (c *command) headers(path string) error {
	h, err := c.parser.ParseHeaders(path)
	if err != nil {
		return err
	}
	if c.cfg.JSON {
		return dlg3.WriteJSON(c.out, h.Summary())
	}
	_, err = fmt.Fprintf(c.out, "%s\n%s%s", h.Banner.Text, h.ShowHeaders(), h.Presences())
	return err
}

func (c *command) attrs(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}

	var counts dlg3.AttrCounts
	if st.IsDir() {
		var errs []error
		counts, errs = dlg3.CategoryAttrCounts(path, c.parser, c.loadOptions())
		if len(counts.Nodes)+len(counts.Areas)+len(counts.Lines) == 0 && len(errs) > 0 {
			return errors.Join(errs...)
		}
	} else {
		f, err := c.parser.ParseWithOptions(path, c.parseOptions())
		if err != nil {
			return err
		}
		counts = dlg3.FileAttrCounts(f)
	}

	if c.cfg.JSON {
		return dlg3.WriteJSON(c.out, counts)
	}
	writeCounts(c.out, "Nodes", counts.Nodes)
	writeCounts(c.out, "Areas", counts.Areas)
	writeCounts(c.out, "Lines", counts.Lines)
	return nil
}

func writeCounts(w io.Writer, title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%d\n", k, counts[k])
	}
}

func (c *command) find(args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	major, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("major code: %w", err)
	}
	minor, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("minor code: %w", err)
	}

	found, errs := dlg3.FindAttribute(args[0], major, minor, c.parser, c.loadOptions())
	if len(found) == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	if c.cfg.JSON {
		return dlg3.WriteJSON(c.out, found)
	}
	for _, fm := range found {
		if fm.Matches.Len() == 0 {
			continue
		}
		fmt.Fprintf(c.out, "%s\tnodes=%v areas=%v lines=%v\n",
			fm.Path, fm.Matches.Nodes, fm.Matches.Areas, fm.Matches.Lines)
	}
	return nil
}

type bboxReport struct {
	BoundingBox dlg3.Bounds `json:"bounding_box"`
	Adjusted    dlg3.Bounds `json:"adjusted"`
	CtrlPoints  dlg3.Bounds `json:"ctrl_pts"`
}

func (c *command) bbox(f *dlg3.File) error {
	r := bboxReport{
		BoundingBox: f.BoundingBox(),
		Adjusted:    f.BoundingBoxAdjusted(),
		CtrlPoints:  f.CtrlPointsBBox(),
	}
	if c.cfg.JSON {
		return dlg3.WriteJSON(c.out, r)
	}
	_, err := fmt.Fprintf(c.out, "bounding box: %s\nadjusted: %s\ncontrol points: %s\n",
		r.BoundingBox, r.Adjusted, r.CtrlPoints)
	return err
}

func (c *command) dump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dlg3.DumpRecords(f, c.out)
}

func (c *command) index(args []string) error {
	root := c.cfg.DataRoot
	if len(args) > 1 {
		return errUsage
	}
	if len(args) == 1 {
		root = args[0]
	}

	idx, err := dlg3.BuildIndexFromDir(root, c.parser, c.loadOptions())
	if err != nil {
		return err
	}
	entries := idx.All()
	if c.cfg.JSON {
		return dlg3.WriteJSON(c.out, entries)
	}
	for _, e := range entries {
		fmt.Fprintf(c.out, "%s\t%s\t%s\t%s\n", e.Path, e.DataCell, e.Section, e.Category)
	}
	fmt.Fprintf(c.out, "%d files, extent %s\n", idx.Count(), idx.Bounds())
	return nil
}

func (c *command) viewport(args []string) error {
	if len(args) != 4 {
		return errUsage
	}
	var v [4]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("viewport: %w", err)
		}
		v[i] = f
	}

	lib, err := dlg3.OpenLibrary(c.cfg.DataRoot, dlg3.LibraryOptions{
		CacheEntries: c.cfg.CacheEntries,
		Load:         c.loadOptions(),
	})
	if err != nil {
		return err
	}
	view := dlg3.Bounds{MinLat: v[0], MaxLat: v[1], MinLong: v[2], MaxLong: v[3]}
	files, errs := lib.FilesForViewport(view, dlg3.QueryOptions{})
	for _, err := range errs {
		log.Printf("skipped: %v", err)
	}

	if c.cfg.JSON {
		reports := make([]dlg3.Report, len(files))
		for i, f := range files {
			reports[i] = f.Report()
		}
		return dlg3.WriteJSON(c.out, reports)
	}
	for _, f := range files {
		local := view.Shift(-float64(f.Zone()-10) * 500000)
		areas := f.AreasInBounds(local)
		fmt.Fprintf(c.out, "%s\t%s\t%d areas in view\n", f.Path, strings.TrimSpace(f.String()), len(areas))
	}
	return nil
}
