// Package workflow renders the generated artifacts: the CI workflow, the
// documentation generator configuration and the documentation publishing
// workflow.
//
// The two GitHub Actions workflows are embedded text/templates. They use
// "[[" and "]]" as delimiters because the workflow syntax itself contains
// "${{ ... }}" expressions that must reach the output untouched.
//
// The docs configuration is not templated. It is built as a yaml.v3 node
// tree so key order is fixed and project names that need quoting are quoted.
package workflow
