// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package project

import (
	"fmt"

	"github.com/walteh/mkdroid/pkg/rewrite"
	"github.com/walteh/mkdroid/pkg/sdk"
)

// Fixed relative paths of the files the scaffolding tool generates.
const (
	manifestName = "AndroidManifest.xml"
	stringsRel   = "res/values/strings.xml"
	buildName    = "build.xml"
	propsName    = "ant.properties"
	localName    = "local.properties"
	proguardName = "proguard-project.txt"
	srcDirName   = "src"
)

// Markers identifying the edit points in the generated files. All of
// these are substrings of single lines the scaffolding templates emit;
// if a template stops emitting one, the integrity check fails instead
// of silently producing a broken project.
const (
	applicationMarker  = "<application"
	antPropsLineMarker = `<property file="ant.properties"`
	antPropsBlockStart = "<!-- The ant.properties file"
	extensionMarker    = "<!-- extension targets. Uncomment"
	sdkImportMarker    = `<import file="${sdk.dir}/tools/ant/build.xml"`
)

// propsBoilerplate lists the comment lines the scaffolding tool puts
// into ant.properties, in file order. Custom-build mode strips each of
// them exactly once.
var propsBoilerplate = []string{
	"# This file is used to override default values used by the Ant build system.",
	"# This file must be checked into Version Control Systems, as it is",
	"# integral to the build system of your project.",
	"# This file is only used by the Ant script.",
	"# You can use this to override default values such as",
	"#  'source.dir' for the location of your java source folder and",
	"#  'out.dir' for the location of your output folder.",
	"# You can also use it define how the release builds are signed by declaring",
	"# the following properties:",
	"#  'key.store' for the location of your keystore and",
	"#  'key.alias' for the name of the key to use.",
	"# The password will be asked during the build when you use the 'release' target.",
}

// manifestRules inserts the uses-sdk declaration block before the
// application tag opener.
func manifestRules(target int) rewrite.RuleSet {
	return rewrite.RuleSet{
		Desc: "application tag",
		Rules: []rewrite.Rule{{
			Marker: rewrite.Contains(applicationMarker),
			Action: rewrite.InsertBefore,
			Text: []string{
				"    <uses-sdk",
				fmt.Sprintf(`        android:minSdkVersion="%d"`, target),
				fmt.Sprintf(`        android:targetSdkVersion="%d" />`, target),
			},
		}},
	}
}

// stringsRules rewrites the captured app_name span with the escaped
// display title, preserving everything outside the span byte-for-byte.
func stringsRules(title string) rewrite.RuleSet {
	return rewrite.RuleSet{
		Desc: "app_name resource",
		Rules: []rewrite.Rule{{
			Marker: rewrite.Pattern(`(name="app_name">)(.+?)(</string>)`),
			Action: rewrite.SubstituteGroup,
			Group:  2,
			Repl:   rewrite.EscapeXML(title),
		}},
	}
}

// buildCustomRules customizes build.xml: load the shared properties,
// optionally hook ndk-build into clean/pre-build, add the signed
// install targets, and pin the version-tag so the SDK's update command
// never regenerates the file. Expected count is 3, or 4 in
// native-build mode.
func buildCustomRules(layout *sdk.Layout, native bool) rewrite.RuleSet {
	rules := []rewrite.Rule{{
		Marker: rewrite.Contains(antPropsLineMarker),
		Action: rewrite.InsertAfter,
		Text: []string{
			fmt.Sprintf("    <loadproperties srcFile=%q />", layout.SharedProps()),
		},
	}}

	if native {
		rules = append(rules, rewrite.Rule{
			Marker: rewrite.Contains(extensionMarker),
			Action: rewrite.InsertAfter,
			Text: []string{
				`    <target name="clean" depends="android_rules.clean">`,
				fmt.Sprintf("        <exec executable=%q failonerror=\"true\">", layout.NDKBuild),
				`            <arg value="clean" />`,
				`        </exec>`,
				`    </target>`,
				``,
				`    <target name="-pre-build">`,
				fmt.Sprintf("        <exec executable=%q failonerror=\"true\" />", layout.NDKBuild),
				`    </target>`,
			},
		})
	}

	rules = append(rules,
		rewrite.Rule{
			Marker: rewrite.Contains(sdkImportMarker),
			Action: rewrite.InsertAfter,
			Text: []string{
				``,
				`    <target name="release-signed" depends="release"`,
				`            description="Builds the signed release package.">`,
				`        <checksum file="${out.final.file}" property="out.final.file.md5" />`,
				`    </target>`,
				``,
				`    <target name="install-signed" depends="release-signed"`,
				`            description="Installs the signed release package.">`,
				`        <exec executable="${sdk.dir}/platform-tools/adb" failonerror="true">`,
				`            <arg line="install -r ${out.final.file}" />`,
				`        </exec>`,
				`    </target>`,
				``,
				`    <target name="help-targets"`,
				`            description="Lists the targets added by mkdroid.">`,
				`        <echo>clean, release-signed, install-signed</echo>`,
				`    </target>`,
			},
		},
		rewrite.Rule{
			Marker: rewrite.Pattern(`(<!-- version-tag: )(\d+)( -->)`),
			Action: rewrite.SubstituteGroup,
			Group:  2,
			Repl:   "custom",
		},
	)

	return rewrite.RuleSet{Desc: "build.xml customization markers", Rules: rules}
}

// buildRemovePropsRules deletes the ant.properties comment block and
// its property element from build.xml, boundary lines inclusive. Both
// boundary hits count; the interior lines are dropped without
// counting.
func buildRemovePropsRules() rewrite.RuleSet {
	return rewrite.RuleSet{
		Desc: "ant.properties block markers",
		Rules: []rewrite.Rule{{
			Marker: rewrite.Contains(antPropsBlockStart),
			Action: rewrite.DropSpan,
			End:    rewrite.Contains(antPropsLineMarker),
		}},
	}
}

// propertiesRules strips the generated boilerplate comments from
// ant.properties. The rules are ordered: each phrase is consumed once,
// in file order.
func propertiesRules() rewrite.RuleSet {
	rules := make([]rewrite.Rule, len(propsBoilerplate))
	for i, phrase := range propsBoilerplate {
		rules[i] = rewrite.Rule{
			Marker: rewrite.Contains(phrase),
			Action: rewrite.DropLine,
		}
	}
	return rewrite.RuleSet{
		Desc:    "ant.properties boilerplate",
		Ordered: true,
		Rules:   rules,
	}
}
