package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/devlin-oss/varinsight/internal/config"
	"github.com/devlin-oss/varinsight/internal/log"
	"github.com/devlin-oss/varinsight/internal/scanner"
	"github.com/devlin-oss/varinsight/pkg/csoracle"
	"github.com/devlin-oss/varinsight/pkg/insight"
)

// insightCmd represents the insight command: resolve a cursor position in a
// C# file to a VariableInsightGraph of its backward data-flow contributors.
var insightCmd = &cobra.Command{
	Use:   "insight [file]",
	Short: "Trace the backward data-flow of a variable, parameter, field, property or method",
	Long: `insight resolves the symbol at a cursor position in a C# file and walks
its assignment sites, method-return paths, parameter bindings, object
initializers and overrides backward, producing a graph of everything that
influences it.

Run without --line/--column to pick a file and position interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInsight(cmd, args)
	},
}

func init() {
	insightCmd.Flags().IntP("line", "l", 0, "1-based line number of the cursor")
	insightCmd.Flags().IntP("column", "c", 0, "1-based column number of the cursor")
	insightCmd.Flags().String("workspace", "", "Workspace root to scan for .cs files (overrides config)")
	insightCmd.Flags().String("format", "", "Output format: json, tree or dot (overrides config)")
	insightCmd.Flags().Int("max-depth", 0, "Maximum traversal depth (0 uses the engine default)")
}

func runInsight(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("workspace"); v != "" {
		cfg.WorkspaceRoot = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.OutputFormat = config.OutputFormat(v)
	}
	if v, _ := cmd.Flags().GetInt("max-depth"); v > 0 {
		cfg.MaxDepth = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var file string
	if len(args) == 1 {
		file = args[0]
	}
	line, _ := cmd.Flags().GetInt("line")
	column, _ := cmd.Flags().GetInt("column")

	if file == "" || line == 0 || column == 0 {
		var err error
		file, line, column, err = promptForPosition(cfg.WorkspaceRoot, file, line, column)
		if err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
	}

	absFile, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolving file path %s: %w", file, err)
	}

	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger := log.New(log.LoggerConfig{Level: level})

	ws := csoracle.NewWorkspace(cfg.WorkspaceRoot, logger)
	if cfg.CacheDir != "" {
		cachePath := filepath.Join(cfg.CacheDir, "signatures.msgpack")
		pc, err := csoracle.OpenParseCache(cachePath)
		if err != nil {
			logger.Warn("signature cache unavailable, continuing without it", "path", cachePath, "error", err)
		} else {
			ws = ws.WithCache(pc)
			defer func() {
				if err := pc.Save(); err != nil {
					logger.Warn("failed to persist signature cache", "error", err)
				}
			}()
		}
	}

	if err := ws.Load(); err != nil {
		return fmt.Errorf("loading workspace %s: %w", cfg.WorkspaceRoot, err)
	}

	oracle := ws.NewOracle()
	graph, ok := insight.AnalyzeWithDepth(context.Background(), oracle, absFile, line, column, cfg.MaxDepth)
	if !ok {
		return fmt.Errorf("no analyzable symbol at %s:%d:%d", file, line, column)
	}

	return renderGraph(graph, cfg.OutputFormat)
}

// promptForPosition fills in whatever of (file, line, column) the flags left
// unset, using a step-by-step huh form.
func promptForPosition(workspaceRoot, file string, line, column int) (string, int, int, error) {
	if file == "" {
		sc := scanner.New(scanner.DefaultOptions())
		found, err := sc.Scan(workspaceRoot)
		if err != nil {
			return "", 0, 0, fmt.Errorf("scanning %s: %w", workspaceRoot, err)
		}

		var options []huh.Option[string]
		for _, fi := range found {
			if fi.Language == "csharp" {
				options = append(options, huh.NewOption(fi.FullPath, fi.FullPath))
			}
		}
		if len(options) == 0 {
			return "", 0, 0, fmt.Errorf("no .cs files found under %s", workspaceRoot)
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("File").
					Description("Select the file containing the symbol to trace").
					Options(options...).
					Value(&file),
			),
		)
		if err := form.Run(); err != nil {
			return "", 0, 0, err
		}
	}

	var lineStr, columnStr string
	if line > 0 {
		lineStr = strconv.Itoa(line)
	}
	if column > 0 {
		columnStr = strconv.Itoa(column)
	}

	if lineStr == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Line").
					Description("1-based line number of the cursor").
					Placeholder("1").
					Value(&lineStr),
			),
		)
		if err := form.Run(); err != nil {
			return "", 0, 0, err
		}
	}
	if columnStr == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Column").
					Description("1-based column number of the cursor").
					Placeholder("1").
					Value(&columnStr),
			),
		)
		if err := form.Run(); err != nil {
			return "", 0, 0, err
		}
	}

	parsedLine, err := strconv.Atoi(lineStr)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid line %q: %w", lineStr, err)
	}
	parsedColumn, err := strconv.Atoi(columnStr)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid column %q: %w", columnStr, err)
	}

	return file, parsedLine, parsedColumn, nil
}

func renderGraph(graph *insight.VariableInsightGraph, format config.OutputFormat) error {
	switch format {
	case config.OutputJSON:
		return renderGraphJSON(graph)
	case config.OutputDot:
		renderGraphDot(graph)
		return nil
	default:
		renderGraphTree(graph)
		return nil
	}
}

func renderGraphJSON(graph *insight.VariableInsightGraph) error {
	data, err := json.MarshalIndent(graphDocument(graph), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling graph: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// nodeDoc and graphDoc give the JSON rendering stable, flat field names
// instead of serializing InsightNode's edge pointers (which would recurse
// through the whole graph per node).
type edgeDoc struct {
	Target   string `json:"target"`
	Relation string `json:"relation"`
	Origin   string `json:"origin"`
}

type nodeDoc struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	TypeString string    `json:"typeString"`
	Location   string    `json:"location"`
	Excerpt    string    `json:"excerpt"`
	Edges      []edgeDoc `json:"edges"`
}

type graphDoc struct {
	Root            string    `json:"root"`
	Nodes           []nodeDoc `json:"nodes"`
	TotalReferences int       `json:"totalReferences"`
}

func graphDocument(graph *insight.VariableInsightGraph) graphDoc {
	doc := graphDoc{TotalReferences: graph.TotalReferences}
	if graph.Root != nil {
		doc.Root = graph.Root.ID
	}
	for _, n := range graph.Nodes {
		nd := nodeDoc{
			ID:         n.ID,
			Name:       n.Name,
			Kind:       n.Kind.String(),
			TypeString: n.TypeString,
			Location:   n.Location.String(),
			Excerpt:    n.Excerpt,
		}
		for _, e := range n.Edges {
			nd.Edges = append(nd.Edges, edgeDoc{
				Target:   e.Target.ID,
				Relation: string(e.Relation),
				Origin:   e.OriginLocation.String(),
			})
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	return doc
}

func renderGraphTree(graph *insight.VariableInsightGraph) {
	if graph.Root == nil {
		fmt.Println("(empty graph)")
		return
	}
	fmt.Printf("%s references across the graph\n", pluralize(graph.TotalReferences, "reference"))
	printNodeTree(graph.Root, "", map[string]bool{})
}

func printNodeTree(n *insight.InsightNode, prefix string, visited map[string]bool) {
	fmt.Printf("%s%s %s (%s) [%s]\n", prefix, n.Kind, n.Name, n.TypeString, n.Location)
	if visited[n.ID] {
		return
	}
	visited[n.ID] = true
	for i, e := range n.Edges {
		connector := "├──"
		childPrefix := prefix + "│   "
		if i == len(n.Edges)-1 {
			connector = "└──"
			childPrefix = prefix + "    "
		}
		fmt.Printf("%s%s %s at %s\n", prefix, connector, e.Relation, e.OriginLocation)
		printNodeTree(e.Target, childPrefix, visited)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func renderGraphDot(graph *insight.VariableInsightGraph) {
	fmt.Println("digraph VariableInsight {")
	fmt.Println(`  rankdir="LR";`)
	for _, n := range graph.Nodes {
		fmt.Printf("  %q [label=%q];\n", n.ID, fmt.Sprintf("%s\\n%s", n.Name, n.Kind))
		for _, e := range n.Edges {
			fmt.Printf("  %q -> %q [label=%q];\n", n.ID, e.Target.ID, e.Relation)
		}
	}
	fmt.Println("}")
}
