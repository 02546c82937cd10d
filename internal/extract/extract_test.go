package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dylan-gluck/cognee-agent/internal/parser"
)

func extractTS(t *testing.T, source string) *Catalog {
	t.Helper()
	cat, err := ExtractSource("/repo", "/repo/src/main.ts", []byte(source), parser.TypeScript, DefaultOptions())
	if err != nil {
		t.Fatalf("ExtractSource failed: %v", err)
	}
	return cat
}

func extractTSX(t *testing.T, source string) *Catalog {
	t.Helper()
	cat, err := ExtractSource("/repo", "/repo/src/main.tsx", []byte(source), parser.TSX, DefaultOptions())
	if err != nil {
		t.Fatalf("ExtractSource failed: %v", err)
	}
	return cat
}

func TestExtractDefaultImport(t *testing.T) {
	cat := extractTS(t, `import React from 'react';`)
	if len(cat.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(cat.Imports))
	}
	imp := cat.Imports[0]
	if imp.Name != "React" || imp.Module != "react" {
		t.Errorf("got name=%q module=%q", imp.Name, imp.Module)
	}
	if imp.IsSideEffect || imp.IsTypeOnly {
		t.Errorf("unexpected flags: %+v", imp)
	}
}

func TestExtractNamedImports(t *testing.T) {
	cat := extractTS(t, `import { useState, useEffect as effect } from 'react';`)
	if len(cat.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(cat.Imports))
	}
	if cat.Imports[0].Name != "useState" {
		t.Errorf("first binding = %q", cat.Imports[0].Name)
	}
	if cat.Imports[1].Name != "effect" {
		t.Errorf("aliased binding should use the alias, got %q", cat.Imports[1].Name)
	}
	for _, imp := range cat.Imports {
		if imp.Module != "react" {
			t.Errorf("module = %q", imp.Module)
		}
	}
}

func TestExtractNamespaceImport(t *testing.T) {
	cat := extractTS(t, `import * as path from 'node:path';`)
	if len(cat.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(cat.Imports))
	}
	if cat.Imports[0].Name != "path" || cat.Imports[0].Module != "node:path" {
		t.Errorf("got %+v", cat.Imports[0])
	}
}

func TestExtractSideEffectImport(t *testing.T) {
	cat := extractTS(t, `import './styles.css';`)
	if len(cat.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(cat.Imports))
	}
	imp := cat.Imports[0]
	if !imp.IsSideEffect {
		t.Error("expected side-effect flag")
	}
	if imp.Name != "" {
		t.Errorf("side-effect import binds no name, got %q", imp.Name)
	}
	if imp.Module != "./styles.css" {
		t.Errorf("module = %q", imp.Module)
	}
}

func TestExtractTypeOnlyImport(t *testing.T) {
	cat := extractTS(t, `import type { Config } from './config';
import { type Helper, run } from './run';`)
	if len(cat.Imports) != 3 {
		t.Fatalf("expected 3 imports, got %d", len(cat.Imports))
	}
	if !cat.Imports[0].IsTypeOnly {
		t.Error("import type clause should mark the binding type-only")
	}
	if !cat.Imports[1].IsTypeOnly {
		t.Error("per-specifier type keyword should mark the binding type-only")
	}
	if cat.Imports[2].IsTypeOnly {
		t.Error("plain specifier in a mixed clause must not be type-only")
	}
}

func TestExtractRequireBinding(t *testing.T) {
	cat := extractTS(t, `const fs = require('fs');`)
	if len(cat.Imports) != 1 {
		t.Fatalf("expected 1 import, got %d", len(cat.Imports))
	}
	if cat.Imports[0].Name != "fs" || cat.Imports[0].Module != "fs" {
		t.Errorf("got %+v", cat.Imports[0])
	}
	if len(cat.Functions) != 0 {
		t.Error("require binding must not also produce a function record")
	}
}

func TestExtractNamedExportClause(t *testing.T) {
	cat := extractTS(t, `const a = 1;
const b = 2;
export { a, b as c };`)
	if len(cat.Exports) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(cat.Exports))
	}
	if cat.Exports[0].Name != "a" || cat.Exports[0].LocalName != "" {
		t.Errorf("got %+v", cat.Exports[0])
	}
	if cat.Exports[1].Name != "c" || cat.Exports[1].LocalName != "b" {
		t.Errorf("aliased export should carry both names, got %+v", cat.Exports[1])
	}
}

func TestExtractExportedFunctionDeclaration(t *testing.T) {
	cat := extractTS(t, `export async function fetchData(url: string): Promise<string> {
  return fetch(url).then(r => r.text());
}`)
	if len(cat.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(cat.Functions))
	}
	fn := cat.Functions[0]
	if fn.Name != "fetchData" || !fn.IsAsync || !fn.IsExported {
		t.Errorf("got %+v", fn)
	}
	if len(cat.Exports) != 1 || cat.Exports[0].Name != "fetchData" {
		t.Fatalf("expected paired export record, got %+v", cat.Exports)
	}
}

func TestExtractDefaultExportFunction(t *testing.T) {
	cat := extractTS(t, `export default function handler(req: Request) { return null; }`)
	if len(cat.Exports) != 1 {
		t.Fatalf("expected 1 export, got %d", len(cat.Exports))
	}
	exp := cat.Exports[0]
	if exp.Name != "default" || !exp.IsDefault {
		t.Errorf("got %+v", exp)
	}
	if len(cat.Functions) != 1 || cat.Functions[0].Name != "handler" {
		t.Fatalf("named default function keeps its own name, got %+v", cat.Functions)
	}
	if !cat.Functions[0].IsExported {
		t.Error("default-exported function should be marked exported")
	}
}

func TestExtractDefaultExportClass(t *testing.T) {
	cat := extractTS(t, `export default class Foo {
  run() {}
}`)
	if len(cat.Classes) != 1 {
		t.Fatalf("expected 1 class, got %+v", cat.Classes)
	}
	cls := cat.Classes[0]
	if cls.Name != "Foo" || !cls.IsExported {
		t.Errorf("named default class keeps its own name and is exported, got %+v", cls)
	}
	if len(cat.Exports) != 1 {
		t.Fatalf("expected 1 export, got %+v", cat.Exports)
	}
	exp := cat.Exports[0]
	if exp.Name != "default" || !exp.IsDefault {
		t.Errorf("got %+v", exp)
	}
	if len(cat.Methods) != 1 || cat.Methods[0].ClassName != "Foo" {
		t.Errorf("methods should join to the class name, got %+v", cat.Methods)
	}
}

func TestExtractDefaultExportExpression(t *testing.T) {
	cat := extractTS(t, `export default { port: 8080 };`)
	if len(cat.Exports) != 1 || cat.Exports[0].Name != "default" || !cat.Exports[0].IsDefault {
		t.Fatalf("got %+v", cat.Exports)
	}
	if len(cat.Functions) != 0 {
		t.Error("object default export must not produce a function record")
	}
}

func TestExtractDefaultExportArrow(t *testing.T) {
	cat := extractTS(t, `export default async () => fetch('/health');`)
	if len(cat.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(cat.Functions))
	}
	fn := cat.Functions[0]
	if fn.Name != "default" || !fn.IsAsync || !fn.IsExported {
		t.Errorf("got %+v", fn)
	}
}

func TestExtractReexport(t *testing.T) {
	cat := extractTS(t, `export { parse, stringify as encode } from './codec';`)
	if len(cat.Exports) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(cat.Exports))
	}
	if len(cat.Imports) != 2 {
		t.Fatalf("re-export should synthesize imports, got %d", len(cat.Imports))
	}
	for _, imp := range cat.Imports {
		if imp.Module != "./codec" {
			t.Errorf("module = %q", imp.Module)
		}
	}
}

func TestExtractReexportImportsDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.ReexportImports = false
	cat, err := ExtractSource("/repo", "/repo/src/idx.ts",
		[]byte(`export { a } from './a';`), parser.TypeScript, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Imports) != 0 {
		t.Errorf("synthesis disabled, got %d imports", len(cat.Imports))
	}
	if len(cat.Exports) != 1 {
		t.Errorf("export record still expected, got %d", len(cat.Exports))
	}
}

func TestExtractStarReexport(t *testing.T) {
	cat := extractTS(t, `export * from './util';`)
	if len(cat.Exports) != 1 || cat.Exports[0].Name != "*" {
		t.Fatalf("got %+v", cat.Exports)
	}
	if len(cat.Imports) != 1 || cat.Imports[0].Module != "./util" {
		t.Fatalf("got %+v", cat.Imports)
	}
}

func TestExtractTypeOnlyExport(t *testing.T) {
	cat := extractTS(t, `export type { Options } from './options';`)
	if len(cat.Exports) != 1 || !cat.Exports[0].IsTypeOnly {
		t.Fatalf("got %+v", cat.Exports)
	}
}

func TestExtractFunctionBindings(t *testing.T) {
	cat := extractTS(t, `const add = (a: number, b: number) => a + b;
const bar = function named() { return 1; };
let handler = async function () {};
const notAFunction = 42;`)
	if len(cat.Functions) != 3 {
		t.Fatalf("expected 3 functions, got %d", len(cat.Functions))
	}
	if cat.Functions[0].Name != "add" {
		t.Errorf("arrow binding name = %q", cat.Functions[0].Name)
	}
	if cat.Functions[1].Name != "bar" {
		t.Errorf("binding name should win over the expression's own name, got %q", cat.Functions[1].Name)
	}
	if cat.Functions[2].Name != "handler" || !cat.Functions[2].IsAsync {
		t.Errorf("got %+v", cat.Functions[2])
	}
}

func TestExtractExportedConstArrow(t *testing.T) {
	cat := extractTS(t, `export const greet = (name: string) => "hi " + name;`)
	if len(cat.Functions) != 1 || !cat.Functions[0].IsExported {
		t.Fatalf("got %+v", cat.Functions)
	}
	if len(cat.Exports) != 1 || cat.Exports[0].Name != "greet" {
		t.Fatalf("got %+v", cat.Exports)
	}
}

func TestExtractClassWithMethods(t *testing.T) {
	cat := extractTS(t, `export class UserService {
  private cache: Map<string, string>;

  constructor(private db: Database) {}

  static create(): UserService { return new UserService(null); }

  async fetchUser(id: string) { return this.db.get(id); }

  get count(): number { return 0; }

  set limit(n: number) {}

  private invalidate() { this.cache.clear(); }

  #hash(key: string) { return key; }
}`)
	if len(cat.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(cat.Classes))
	}
	cls := cat.Classes[0]
	if cls.Name != "UserService" || !cls.IsExported || cls.IsAbstract {
		t.Errorf("got %+v", cls)
	}

	byName := map[string]MethodRecord{}
	for _, m := range cat.Methods {
		byName[m.Name] = m
		if m.ClassName != "UserService" {
			t.Errorf("method %q class = %q", m.Name, m.ClassName)
		}
	}

	if m := byName["constructor"]; !m.IsConstructor || m.IsGetter || m.IsSetter {
		t.Errorf("constructor flags: %+v", m)
	}
	if m := byName["create"]; !m.IsStatic {
		t.Errorf("create flags: %+v", m)
	}
	if m := byName["fetchUser"]; !m.IsAsync || m.IsStatic {
		t.Errorf("fetchUser flags: %+v", m)
	}
	if m := byName["count"]; !m.IsGetter || m.IsSetter {
		t.Errorf("count flags: %+v", m)
	}
	if m := byName["limit"]; !m.IsSetter || m.IsGetter {
		t.Errorf("limit flags: %+v", m)
	}
	if m := byName["invalidate"]; !m.IsPrivate {
		t.Errorf("invalidate flags: %+v", m)
	}
	if m := byName["#hash"]; !m.IsPrivate {
		t.Errorf("#hash flags: %+v", m)
	}
}

func TestExtractAbstractClass(t *testing.T) {
	cat := extractTS(t, `export abstract class Shape {
  abstract area(): number;
}`)
	if len(cat.Classes) != 1 || !cat.Classes[0].IsAbstract {
		t.Fatalf("got %+v", cat.Classes)
	}
	if len(cat.Methods) != 1 || cat.Methods[0].Name != "area" {
		t.Fatalf("abstract method signature should be cataloged, got %+v", cat.Methods)
	}
}

func TestExtractTypeConstructs(t *testing.T) {
	cat := extractTS(t, `export interface User { id: string; }
interface Internal { n: number; }
export type ID = string | number;
export enum Color { Red, Green }`)
	if len(cat.Interfaces) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(cat.Interfaces))
	}
	if !cat.Interfaces[0].IsExported || cat.Interfaces[1].IsExported {
		t.Errorf("export flags wrong: %+v", cat.Interfaces)
	}
	if len(cat.TypeAliases) != 1 || cat.TypeAliases[0].Name != "ID" {
		t.Fatalf("got %+v", cat.TypeAliases)
	}
	if len(cat.Enums) != 1 || cat.Enums[0].Name != "Color" || !cat.Enums[0].IsExported {
		t.Fatalf("got %+v", cat.Enums)
	}
}

func TestExtractNamespaceMembers(t *testing.T) {
	cat := extractTS(t, `namespace Validation {
  export interface Validator { check(s: string): boolean; }
  export function isEmail(s: string) { return s.includes('@'); }
}`)
	if len(cat.Interfaces) != 1 || cat.Interfaces[0].Name != "Validator" {
		t.Fatalf("got %+v", cat.Interfaces)
	}
	if len(cat.Functions) != 1 || cat.Functions[0].Name != "isEmail" {
		t.Fatalf("got %+v", cat.Functions)
	}
}

func TestExtractTSXComponent(t *testing.T) {
	cat := extractTSX(t, `import React from 'react';

export const App = () => <div>hello</div>;

export default function Page() {
  return <App />;
}`)
	if len(cat.Imports) != 1 {
		t.Fatalf("got %d imports", len(cat.Imports))
	}
	if len(cat.Functions) != 2 {
		t.Fatalf("expected App and Page, got %+v", cat.Functions)
	}
	if len(cat.Diagnostics) != 0 {
		t.Errorf("valid TSX should produce no diagnostics: %v", cat.Diagnostics)
	}
}

func TestExtractRawMode(t *testing.T) {
	source := `export const x = 1;`
	opts := Options{Mode: ModeRaw}
	cat, err := ExtractSource("/repo", "/repo/src/raw.ts", []byte(source), parser.TypeScript, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cat.SourceCode != source {
		t.Errorf("raw mode must carry the full source, got %q", cat.SourceCode)
	}
	if cat.RecordCount() != 0 {
		t.Errorf("raw mode must carry no records, got %d", cat.RecordCount())
	}
	if cat.Mode != ModeRaw {
		t.Errorf("mode = %q", cat.Mode)
	}
}

func TestExtractDetailedModeOmitsSource(t *testing.T) {
	cat := extractTS(t, `export const x = 1;`)
	if cat.SourceCode != "" {
		t.Error("detailed catalog must not carry the full source text")
	}
	if cat.Mode != ModeDetailed {
		t.Errorf("mode = %q", cat.Mode)
	}
}

func TestExtractSpansAndSource(t *testing.T) {
	cat := extractTS(t, `const x = 1;

export function f() {}`)
	if len(cat.Functions) != 1 {
		t.Fatalf("got %+v", cat.Functions)
	}
	fn := cat.Functions[0]
	if fn.Span.Start.Row != 2 {
		t.Errorf("span start row = %d, want 2", fn.Span.Start.Row)
	}
	if fn.SourceCode != "export function f() {}" {
		t.Errorf("source = %q", fn.SourceCode)
	}
	if fn.FilePath != "/repo/src/main.ts" {
		t.Errorf("file path = %q", fn.FilePath)
	}
}

func TestExtractSyntaxErrorDiagnostics(t *testing.T) {
	cat := extractTS(t, `export function good() {}

const ===;

export const alsoGood = () => 1;`)
	if len(cat.Functions) != 2 {
		t.Fatalf("valid declarations around the error must survive, got %+v", cat.Functions)
	}
	if len(cat.Diagnostics) == 0 {
		t.Error("the error subtree should yield a diagnostic")
	}
}

func TestExtractRepoRelativeName(t *testing.T) {
	cat := extractTS(t, `const x = 1;`)
	if cat.Name != "src/main.ts" {
		t.Errorf("name = %q, want repo-relative", cat.Name)
	}
}

func TestFileIDStable(t *testing.T) {
	a := FileID("/repo/src/a.ts")
	b := FileID("/repo/src/a.ts")
	if a != b {
		t.Error("same path must yield same ID")
	}
	if a == FileID("/repo/src/b.ts") {
		t.Error("different paths must yield different IDs")
	}
}

func TestExtractFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svc.ts")
	src := `export class Svc { run() {} }`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Extract(dir, path, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(cat.Classes) != 1 || cat.Classes[0].Name != "Svc" {
		t.Fatalf("got %+v", cat.Classes)
	}
	if cat.Name != "svc.ts" {
		t.Errorf("name = %q", cat.Name)
	}
	if cat.ID != FileID(path) {
		t.Error("catalog ID must match FileID of the path")
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	_, err := Extract("/repo", "/repo/readme.md", DefaultOptions())
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
