package tools

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

var modelNamePattern = regexp.MustCompile(`^cnig_[A-Za-z]+_[0-9]{4}$`)

type listModelsArgs struct {
	Type     string `json:"type,omitempty"`
	Abstract *bool  `json:"abstract,omitempty"`
}

type modelNameArgs struct {
	Name string `json:"name"`
}

type noArgs struct{}

func (h *Handler) registerStandardTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_document_models",
		Description: "List the CNIG document-model standards, optionally filtered by document type or abstract flag.",
		Annotations: readOnly("List document models"),
		InputSchema: objectSchema(map[string]any{
			"type":     enumProp("Only models for this document type", gpu.DocumentTypes),
			"abstract": boolProp("Only abstract (or only concrete) models"),
		}),
	}, handlerFor(h, "list_document_models", h.listDocumentModels))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_document_model",
		Description: "Get the full feature-type and attribute schema of one CNIG document model.",
		Annotations: readOnly("Get document model"),
		InputSchema: objectSchema(map[string]any{
			"name": patternProp("Model name, e.g. cnig_PLU_2017", "^cnig_[A-Za-z]+_[0-9]{4}$"),
		}, "name"),
	}, handlerFor(h, "get_document_model", h.getDocumentModel))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sup_categories",
		Description: "List the public-utility servitude (SUP) category codes and their labels.",
		Annotations: readOnly("List SUP categories"),
		InputSchema: objectSchema(map[string]any{}),
	}, handlerFor(h, "list_sup_categories", h.listSupCategories))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_du_categories",
		Description: "List the zoning category codes used by urban-planning documents, grouped by document type.",
		Annotations: readOnly("List DU categories"),
		InputSchema: objectSchema(map[string]any{}),
	}, handlerFor(h, "list_du_categories", h.listDuCategories))
}

func (h *Handler) listDocumentModels(ctx context.Context, args listModelsArgs) (string, error) {
	if args.Type != "" && !slices.Contains(gpu.DocumentTypes, args.Type) {
		return "", paramErrorf("unknown document type %q (accepted: %s)", args.Type, strings.Join(gpu.DocumentTypes, ", "))
	}

	models, err := h.client.Models(ctx, args.Type, args.Abstract)
	if err != nil {
		return "", err
	}

	if len(models) == 0 {
		return "No document models matched. Drop the filters to list every published standard.", nil
	}

	var b strings.Builder
	b.WriteString("# Document Models\n\n")
	for _, m := range models {
		fmt.Fprintf(&b, "- **%s**: %s (type %s", m.Name, m.Title, m.Type)
		if m.Abstract {
			b.WriteString(", abstract")
		}
		b.WriteString(")\n")
	}
	return b.String(), nil
}

func (h *Handler) getDocumentModel(ctx context.Context, args modelNameArgs) (string, error) {
	if !modelNamePattern.MatchString(args.Name) {
		return "", paramErrorf("name must match cnig_<TYPE>_<YEAR>, got %q", args.Name)
	}

	model, err := h.client.Model(ctx, args.Name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n", model.Name, model.Title)
	if model.Description != "" {
		b.WriteString("\n" + model.Description + "\n")
	}
	field(&b, "Document type", model.Type)
	field(&b, "Parent model", model.Parent)
	if model.Abstract {
		field(&b, "Abstract", "yes")
	}

	if len(model.FeatureTypes) == 0 {
		b.WriteString("\nThis model declares no feature types.\n")
		return b.String(), nil
	}

	b.WriteString("\n## Feature types\n")
	for _, ft := range model.FeatureTypes {
		fmt.Fprintf(&b, "\n### %s: %s\n", ft.Name, ft.Title)
		if ft.Description != "" {
			b.WriteString("\n" + ft.Description + "\n")
		}
		if len(ft.Attributes) == 0 {
			continue
		}
		b.WriteString("\n| Name | Title | Type | Description |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, attr := range ft.Attributes {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				tableCell(attr.Name), tableCell(attr.Title), tableCell(attr.Type), tableCell(attr.Description))
		}
	}
	return b.String(), nil
}

func (h *Handler) listSupCategories(ctx context.Context, _ noArgs) (string, error) {
	cats, err := h.client.SupCategories(ctx)
	if err != nil {
		return "", err
	}

	if len(cats) == 0 {
		return "No SUP categories are published upstream.", nil
	}

	var b strings.Builder
	b.WriteString("# SUP Categories\n\n")
	b.WriteString("| Code | Label |\n|---|---|\n")
	for _, c := range cats {
		fmt.Fprintf(&b, "| %s | %s |\n", tableCell(c.Code), tableCell(c.Label))
	}
	return b.String(), nil
}

func (h *Handler) listDuCategories(ctx context.Context, _ noArgs) (string, error) {
	cats, err := h.client.DuCategories(ctx)
	if err != nil {
		return "", err
	}

	if len(cats) == 0 {
		return "No DU zone categories are published upstream.", nil
	}

	grouped := make(map[string][]gpu.Category)
	for _, c := range cats {
		docType := c.DocumentType
		if docType == "" {
			docType = "Other"
		}
		grouped[docType] = append(grouped[docType], c)
	}
	docTypes := make([]string, 0, len(grouped))
	for dt := range grouped {
		docTypes = append(docTypes, dt)
	}
	sort.Strings(docTypes)

	var b strings.Builder
	b.WriteString("# DU Zone Categories\n")
	for _, dt := range docTypes {
		fmt.Fprintf(&b, "\n## %s\n", dt)
		for _, c := range grouped[dt] {
			fmt.Fprintf(&b, "- **%s**: %s\n", c.Code, c.Label)
		}
	}
	return b.String(), nil
}
