package workspace

import (
	"github.com/mwessel/proin/prosim/parser"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "proin"

var log = commonlog.GetLogger("proin.workspace")

type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(ws *Workspace, version string) *LSPServer {
	ls := &LSPServer{
		workspace: ws,
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"=", ","},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := ls.workspace.Update(params.TextDocument.URI, params.TextDocument.Text)
	ls.publishDiagnostics(ctx, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	doc := ls.workspace.Update(params.TextDocument.URI, whole.Text)
	ls.publishDiagnostics(ctx, doc)
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.workspace.Remove(params.TextDocument.URI)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	doc := ls.workspace.Update(params.TextDocument.URI, *params.Text)
	ls.publishDiagnostics(ctx, doc)
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := ls.workspace.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	markdown := ls.workspace.Hover(doc, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if markdown == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: markdown,
		},
	}, nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc := ls.workspace.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}

	completions := ls.workspace.Completions(doc, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail

		items = append(items, protocol.CompletionItem{
			Label:  c.Label,
			Kind:   &kind,
			Detail: &detail,
		})
	}

	return items, nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	diagnostics := ls.workspace.Diagnostics(doc)
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), doc.URI)

	items := make([]protocol.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		severity := toProtocolSeverity(d.Severity)
		items = append(items, protocol.Diagnostic{
			Range:    toProtocolRange(d.Span),
			Severity: &severity,
			Source:   strPtr(lsName),
			Message:  d.Message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: items,
	})
}

func toProtocolRange(span parser.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uinteger(span.Start.Line - 1),
			Character: uinteger(span.Start.Column - 1),
		},
		End: protocol.Position{
			Line:      uinteger(span.End.Line - 1),
			Character: uinteger(span.End.Column - 1),
		},
	}
}

func toProtocolSeverity(s Severity) protocol.DiagnosticSeverity {
	switch s {
	case SeverityError:
		return protocol.DiagnosticSeverityError
	case SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindKeyword:
		return protocol.CompletionItemKindKeyword
	case CompletionKindStream:
		return protocol.CompletionItemKindVariable
	case CompletionKindUnit:
		return protocol.CompletionItemKindClass
	case CompletionKindComponent:
		return protocol.CompletionItemKindConstant
	default:
		return protocol.CompletionItemKindText
	}
}

func uinteger(v int) protocol.UInteger {
	if v < 0 {
		v = 0
	}
	return protocol.UInteger(v)
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
