// Package integrations wires optional tools into a freshly generated web-vue
// project. ApplyTools loads the project's config files through their editors,
// runs one handler per selected tool, and saves everything in a fixed order.
// Tool dependency versions live in the embedded tools.yaml.
package integrations
