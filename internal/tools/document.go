package tools

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

var (
	documentIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)
	datePattern       = regexp.MustCompile(`^[0-9]{8}$`)
)

type searchDocumentsArgs struct {
	Families      []string `json:"families,omitempty"`
	Types         []string `json:"types,omitempty"`
	Partition     string   `json:"partition,omitempty"`
	Status        string   `json:"status,omitempty"`
	UploadedAfter string   `json:"uploaded_after,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Offset        int      `json:"offset,omitempty"`
}

type documentIDArgs struct {
	ID string `json:"id"`
}

func (h *Handler) registerDocumentTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search urban-planning documents (PLU, PLUi, CC, POS, PSMV, SUP, SCoT) by family, type, partition, legal status, or upload date.",
		Annotations: readOnly("Search documents"),
		InputSchema: objectSchema(map[string]any{
			"families":       enumListProp("Document families to include", gpu.DocumentFamilies),
			"types":          enumListProp("Document types to include", gpu.DocumentTypes),
			"partition":      stringProp("Exact partition identifier"),
			"status":         enumProp("Legal status of the document", gpu.LegalStatuses),
			"uploaded_after": patternProp("Only documents uploaded after this date (YYYYMMDD)", "^[0-9]{8}$"),
			"limit":          limitProp(),
			"offset":         offsetProp(),
		}),
	}, handlerFor(h, "search_documents", h.searchDocuments))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_document_details",
		Description: "Get the full details of one document: title, producer, projection, attached files, download URLs, and access restrictions.",
		Annotations: readOnly("Get document details"),
		InputSchema: objectSchema(map[string]any{
			"id": patternProp("Document identifier (32 lowercase hex characters)", "^[0-9a-f]{32}$"),
		}, "id"),
	}, handlerFor(h, "get_document_details", h.getDocumentDetails))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_document_files",
		Description: "List the written pieces attached to one document.",
		Annotations: readOnly("List document files"),
		InputSchema: objectSchema(map[string]any{
			"id": patternProp("Document identifier (32 lowercase hex characters)", "^[0-9a-f]{32}$"),
		}, "id"),
	}, handlerFor(h, "list_document_files", h.listDocumentFiles))
}

func (h *Handler) searchDocuments(ctx context.Context, args searchDocumentsArgs) (string, error) {
	limit, err := normalizeLimit(args.Limit)
	if err != nil {
		return "", err
	}
	if args.Offset < 0 {
		return "", paramErrorf("offset must be >= 0, got %d", args.Offset)
	}
	for _, fam := range args.Families {
		if !slices.Contains(gpu.DocumentFamilies, fam) {
			return "", paramErrorf("unknown document family %q (accepted: %s)", fam, strings.Join(gpu.DocumentFamilies, ", "))
		}
	}
	for _, typ := range args.Types {
		if !slices.Contains(gpu.DocumentTypes, typ) {
			return "", paramErrorf("unknown document type %q (accepted: %s)", typ, strings.Join(gpu.DocumentTypes, ", "))
		}
	}
	if args.Status != "" && !slices.Contains(gpu.LegalStatuses, args.Status) {
		return "", paramErrorf("unknown legal status %q (accepted: %s)", args.Status, strings.Join(gpu.LegalStatuses, ", "))
	}
	if args.UploadedAfter != "" && !datePattern.MatchString(args.UploadedAfter) {
		return "", paramErrorf("uploaded_after must be a YYYYMMDD date, got %q", args.UploadedAfter)
	}

	docs, err := h.client.SearchDocuments(ctx, gpu.DocumentSearch{
		Families:      args.Families,
		Types:         args.Types,
		Partition:     args.Partition,
		Status:        args.Status,
		UploadedAfter: args.UploadedAfter,
		Limit:         limit,
		Offset:        args.Offset,
	})
	if err != nil {
		return "", err
	}

	if len(docs) == 0 {
		return "No documents matched your search. Remove filters, or use search_territories first to find the right partition.", nil
	}

	var b strings.Builder
	b.WriteString("# Urban Planning Documents\n\n")
	fmt.Fprintf(&b, "Found %d documents.\n", len(docs))
	for _, d := range docs {
		fmt.Fprintf(&b, "\n## %s\n", d.Name)
		field(&b, "ID", d.ID)
		field(&b, "Type", d.Type)
		field(&b, "Legal status", d.LegalStatus)
		if d.Status != "" {
			status := d.Status
			if d.StatusDate != "" {
				status += " (" + d.StatusDate + ")"
			}
			field(&b, "Status", status)
		}
		if d.Grid != nil {
			field(&b, "Territory", fmt.Sprintf("%s (%s)", d.Grid.Title, d.Grid.Name))
		}
		field(&b, "Partition", d.Partition)
		field(&b, "Uploaded", d.UploadDate)
		field(&b, "Updated", d.UpdateDate)
	}
	return b.String(), nil
}

func (h *Handler) getDocumentDetails(ctx context.Context, args documentIDArgs) (string, error) {
	if err := validateDocumentID(args.ID); err != nil {
		return "", err
	}
	doc, err := h.client.DocumentDetails(ctx, args.ID)
	if err != nil {
		return "", err
	}
	return prettyJSON(gpu.PruneDocument(doc))
}

func (h *Handler) listDocumentFiles(ctx context.Context, args documentIDArgs) (string, error) {
	if err := validateDocumentID(args.ID); err != nil {
		return "", err
	}
	files, err := h.client.DocumentFiles(ctx, args.ID)
	if err != nil {
		return "", err
	}

	if len(files) == 0 {
		return "This document has no attached files. Use get_document_details to check its writing materials instead.", nil
	}

	var b strings.Builder
	b.WriteString("# Document Files\n\n")
	fmt.Fprintf(&b, "%d file(s) attached to document %s.\n\n", len(files), args.ID)
	for _, f := range files {
		if f.Title != "" {
			fmt.Fprintf(&b, "- **%s**: %s (`%s`)\n", f.Name, f.Title, f.Path)
			continue
		}
		fmt.Fprintf(&b, "- **%s** (`%s`)\n", f.Name, f.Path)
	}
	return b.String(), nil
}

func validateDocumentID(id string) error {
	if !documentIDPattern.MatchString(id) {
		return paramErrorf("id must be a 32-character lowercase hex identifier, got %q", id)
	}
	return nil
}
