package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

type searchProceduresArgs struct {
	TerritoryCode string `json:"territory_code"`
	DocumentType  string `json:"document_type,omitempty"`
	ProcedureType string `json:"procedure_type,omitempty"`
	ApprovedAfter string `json:"approved_after,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Offset        int    `json:"offset,omitempty"`
}

func (h *Handler) registerProcedureTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_procedures",
		Description: "List the administrative procedures (elaboration, revision, modification, update) affecting the planning documents of a territory.",
		Annotations: readOnly("Search procedures"),
		InputSchema: objectSchema(map[string]any{
			"territory_code": stringProp("Territory code (INSEE or SIREN)"),
			"document_type":  enumProp("Only procedures on this document type", gpu.DocumentTypes),
			"procedure_type": enumProp("Procedure-type code", gpu.ProcedureTypes),
			"approved_after": patternProp("Only procedures approved after this date (YYYYMMDD)", "^[0-9]{8}$"),
			"limit":          limitProp(),
			"offset":         offsetProp(),
		}, "territory_code"),
	}, handlerFor(h, "search_procedures", h.searchProcedures))
}

func (h *Handler) searchProcedures(ctx context.Context, args searchProceduresArgs) (string, error) {
	if err := validateCode(args.TerritoryCode); err != nil {
		return "", err
	}
	limit, err := normalizeLimit(args.Limit)
	if err != nil {
		return "", err
	}
	if args.Offset < 0 {
		return "", paramErrorf("offset must be >= 0, got %d", args.Offset)
	}
	if args.DocumentType != "" && !slices.Contains(gpu.DocumentTypes, args.DocumentType) {
		return "", paramErrorf("unknown document type %q (accepted: %s)", args.DocumentType, strings.Join(gpu.DocumentTypes, ", "))
	}
	if args.ProcedureType != "" && !slices.Contains(gpu.ProcedureTypes, args.ProcedureType) {
		return "", paramErrorf("unknown procedure type %q (accepted: %s)", args.ProcedureType, strings.Join(gpu.ProcedureTypes, ", "))
	}
	if args.ApprovedAfter != "" && !datePattern.MatchString(args.ApprovedAfter) {
		return "", paramErrorf("approved_after must be a YYYYMMDD date, got %q", args.ApprovedAfter)
	}

	procs, err := h.client.Procedures(ctx, args.TerritoryCode, gpu.ProcedureSearch{
		DocumentType:  args.DocumentType,
		ProcedureType: args.ProcedureType,
		ApprovedAfter: args.ApprovedAfter,
		Limit:         limit,
		Offset:        args.Offset,
	})
	if err != nil {
		return "", err
	}

	if len(procs) == 0 {
		return fmt.Sprintf("No procedures found for territory %s. Verify the code with search_territories, or drop the type filters.", args.TerritoryCode), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Procedures for %s\n\n", args.TerritoryCode)
	fmt.Fprintf(&b, "Found %d procedures.\n", len(procs))
	for _, p := range procs {
		fmt.Fprintf(&b, "\n## %s\n", p.Name)
		field(&b, "ID", p.ID)
		field(&b, "Procedure", fmt.Sprintf("%s (%s)", gpu.ProcedureLabel(p.Type), p.Type))
		if p.DocumentName != "" {
			field(&b, "Document", fmt.Sprintf("%s %s", p.DocumentType, p.DocumentName))
		} else {
			field(&b, "Document type", p.DocumentType)
		}
		field(&b, "Approved", p.ApprovalDate)
		if p.Grid != nil {
			field(&b, "Territory", fmt.Sprintf("%s (%s)", p.Grid.Title, p.Grid.Name))
		}
		if len(p.Files) > 0 {
			field(&b, "Files", fmt.Sprintf("%d attached", len(p.Files)))
		}
	}
	return b.String(), nil
}
