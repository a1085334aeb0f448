// Tmplwalk renders a directory tree of templates against one or more INI
// configuration files.
//
// Every file under SOURCE is rendered with text/template, with the merged
// configuration bound as {{ .config.section.key }}. With --extension only the
// matching files are rendered (and the extension is stripped); everything else
// is copied unchanged. The source directory structure is mirrored into the
// output root, or files are rendered in place when no output is given.
//
// Usage:
//
//	tmplwalk site/ base.ini prod.ini -o dist/ -e .tmpl   # render into dist/
//	tmplwalk conf.d/ values.ini                          # render in place
//	tmplwalk site/ base.ini -o dist/ --watch             # re-render on change
//	tmplwalk merge base.ini prod.ini                     # print merged config
package main
