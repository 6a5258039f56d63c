// Package config manages user-level settings stored at ~/.kickstart/config.yaml.
// Values can be overridden with KICKSTART_* environment variables. Settings
// cover defaults for project creation: template, package manager, whether to
// install dependencies and initialize git, and editor behavior such as the
// post-save syntax check and the .gitignore section comment.
package config
