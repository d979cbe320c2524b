/*
 * Copyright (c) 2024-present unTill Pro, Ltd.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/untillpro/goutils/cobrau"
)

const articleYAML = `
ident: article
properties:
  id:
    type: id
  title:
    type: string
    l10n: true
    required: true
  tags:
    type: string
    multiple: true
  email:
    type: email
`

func prepareMetadata(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "article.yaml"), []byte(articleYAML), 0o600))
	return dir
}

func run(args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd := newRootCmd(append([]string{"charcoal"}, args...), "1.0.0")
	rootCmd.SetOut(out)
	err := cobrau.ExecCommandAndCatchInterrupt(rootCmd)
	return out.String(), err
}

func TestSchema(t *testing.T) {
	require := require.New(t)
	dir := prepareMetadata(t)

	out, err := run("schema", "article", "-m", dir, "--locales", "en,fr")
	require.NoError(err)
	require.Equal("CREATE TABLE IF NOT EXISTS `article` (\n"+
		"  `id` INT NOT NULL AUTO_INCREMENT,\n"+
		"  `title_en` VARCHAR(255) COLLATE utf8mb4_unicode_ci NULL,\n"+
		"  `title_fr` VARCHAR(255) COLLATE utf8mb4_unicode_ci NULL,\n"+
		"  `tags` TEXT COLLATE utf8mb4_unicode_ci NULL,\n"+
		"  `email` VARCHAR(254) COLLATE utf8mb4_unicode_ci NULL,\n"+
		"  PRIMARY KEY (`id`)\n"+
		")\n", out)

	out, err = run("schema", "article", "-m", dir, "--dialect", "postgres")
	require.NoError(err)
	require.Contains(out, `"id" SERIAL NOT NULL`)

	_, err = run("schema", "nothing", "-m", dir)
	require.Error(err)

	_, err = run("schema", "article", "-m", dir, "--dialect", "oracle")
	require.Error(err)
}

func TestFilter(t *testing.T) {
	require := require.New(t)
	dir := prepareMetadata(t)

	out, err := run("filter", "article", "tags = go AND title = 'x'", "-m", dir, "--locales", "en,fr", "--locale", "fr")
	require.NoError(err)
	require.Equal("WHERE FIND_IN_SET(\"go\", `tags`) AND `title_fr` = \"x\"\n", out)

	out, err = run("filter", "article", "tags", "IS", "NULL", "-m", dir, "--dialect", "postgres")
	require.NoError(err)
	require.Equal("WHERE \"tags\" IS NULL\n", out)

	out, err = run("filter", "article", "title = '007'", "-m", dir, "--dialect", "postgres")
	require.NoError(err)
	require.Equal("WHERE \"title_en\" = '007'\n", out)

	_, err = run("filter", "article", "title ~ 1", "-m", dir)
	require.Error(err)

	_, err = run("filter", "article", "title = 1", "-m", dir, "--locale", "de")
	require.Error(err, "locale is not available")
}

func TestValidate(t *testing.T) {
	require := require.New(t)
	dir := prepareMetadata(t)

	dataFile := func(content string) string {
		f := filepath.Join(t.TempDir(), "data.json")
		require.NoError(os.WriteFile(f, []byte(content), 0o600))
		return f
	}

	out, err := run("validate", "article", dataFile(`{"title": "Hello", "tags": "a,b", "email": "john@example.com"}`), "-m", dir)
	require.NoError(err)
	require.Equal("ok\n", out)

	out, err = run("validate", "article", dataFile(`{"email": "not an address"}`), "-m", dir)
	require.ErrorIs(err, ErrValidationFailed)
	require.Contains(out, "email: email\n")
	require.Contains(out, "title: required")

	_, err = run("validate", "article", filepath.Join(dir, "missing.json"), "-m", dir)
	require.Error(err)
}
