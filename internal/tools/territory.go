package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

type searchTerritoriesArgs struct {
	Code     string   `json:"code,omitempty"`
	Title    string   `json:"title,omitempty"`
	Types    []string `json:"types,omitempty"`
	RNU      *bool    `json:"rnu,omitempty"`
	Approved *bool    `json:"approved,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

type territoryCodeArgs struct {
	Code string `json:"code"`
}

func (h *Handler) registerTerritoryTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_territories",
		Description: "Search administrative territories (communes, EPCIs, departments, regions, SCoT perimeters) by code, title, type, or planning flags.",
		Annotations: readOnly("Search territories"),
		InputSchema: objectSchema(map[string]any{
			"code":     stringProp("Exact territory code (INSEE or SIREN)"),
			"title":    stringProp("Substring of the territory's official title"),
			"types":    enumListProp("Territory types to include", gpu.GridTypes),
			"rnu":      boolProp("Only territories governed (or not) by the national rule (RNU)"),
			"approved": boolProp("Only SCoT perimeters with an approved scheme"),
			"limit":    limitProp(),
			"offset":   offsetProp(),
		}),
	}, handlerFor(h, "search_territories", h.searchTerritories))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_territory",
		Description: "Get one territory by its code.",
		Annotations: readOnly("Get territory"),
		InputSchema: objectSchema(map[string]any{
			"code": stringProp("Territory code (INSEE or SIREN)"),
		}, "code"),
	}, handlerFor(h, "get_territory", h.getTerritory))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_territory_parents",
		Description: "List the territories containing the given territory (e.g. the department and region of a commune).",
		Annotations: readOnly("Get territory parents"),
		InputSchema: objectSchema(map[string]any{
			"code": stringProp("Territory code (INSEE or SIREN)"),
		}, "code"),
	}, handlerFor(h, "get_territory_parents", h.getTerritoryParents))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_territory_children",
		Description: "List the territories contained in the given territory (e.g. the communes of an EPCI).",
		Annotations: readOnly("Get territory children"),
		InputSchema: objectSchema(map[string]any{
			"code": stringProp("Territory code (INSEE or SIREN)"),
		}, "code"),
	}, handlerFor(h, "get_territory_children", h.getTerritoryChildren))
}

func (h *Handler) searchTerritories(ctx context.Context, args searchTerritoriesArgs) (string, error) {
	limit, err := normalizeLimit(args.Limit)
	if err != nil {
		return "", err
	}
	if args.Offset < 0 {
		return "", paramErrorf("offset must be >= 0, got %d", args.Offset)
	}
	for _, typ := range args.Types {
		if !slices.Contains(gpu.GridTypes, typ) {
			return "", paramErrorf("unknown territory type %q (accepted: %s)", typ, strings.Join(gpu.GridTypes, ", "))
		}
	}

	grids, err := h.client.SearchGrids(ctx, gpu.GridSearch{
		Code:     args.Code,
		Title:    args.Title,
		Types:    args.Types,
		RNU:      args.RNU,
		Approved: args.Approved,
		Limit:    limit,
		Offset:   args.Offset,
	})
	if err != nil {
		return "", err
	}

	if len(grids) == 0 {
		return "No territories matched your search. Try a partial title with the `title` parameter, or remove type filters.", nil
	}

	var b strings.Builder
	b.WriteString("# Administrative Territories\n\n")
	fmt.Fprintf(&b, "Found %d territories.\n", len(grids))
	for _, g := range grids {
		fmt.Fprintf(&b, "\n## %s (%s)\n", g.Title, g.Name)
		field(&b, "Type", g.Type)
		field(&b, "RNU", yesNo(g.RNU))
		field(&b, "Coastline", yesNo(g.Coastline))
		if g.Type == gpu.GridTypeSCOT {
			field(&b, "Approved", yesNo(g.Approved))
		}
	}
	return b.String(), nil
}

func (h *Handler) getTerritory(ctx context.Context, args territoryCodeArgs) (string, error) {
	if err := validateCode(args.Code); err != nil {
		return "", err
	}
	grid, err := h.client.GridDetails(ctx, args.Code)
	if err != nil {
		return "", err
	}
	return prettyJSON(gpu.PruneGrid(grid))
}

func (h *Handler) getTerritoryParents(ctx context.Context, args territoryCodeArgs) (string, error) {
	if err := validateCode(args.Code); err != nil {
		return "", err
	}
	grids, err := h.client.GridParents(ctx, args.Code)
	if err != nil {
		return "", err
	}
	if len(grids) == 0 {
		return fmt.Sprintf("Territory %s has no parent territories.", args.Code), nil
	}
	return prettyJSON(gpu.PruneGrids(grids))
}

func (h *Handler) getTerritoryChildren(ctx context.Context, args territoryCodeArgs) (string, error) {
	if err := validateCode(args.Code); err != nil {
		return "", err
	}
	grids, err := h.client.GridChildren(ctx, args.Code)
	if err != nil {
		return "", err
	}
	if len(grids) == 0 {
		return fmt.Sprintf("Territory %s has no child territories.", args.Code), nil
	}
	return prettyJSON(gpu.PruneGrids(grids))
}

func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return paramErrorf("code must not be empty")
	}
	return nil
}
