package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Skeleton files the way the scaffolding tool generates them. The
// trailing blanks in the manifest are deliberate: the whitespace pass
// has to clean them up.

const genManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android"
    package="com.example.demo"
    android:versionCode="1"
    android:versionName="1.0" >

    <application
        android:label="@string/app_name" >
        <activity
            android:name=".Main"
            android:label="@string/app_name" >
        </activity>
    </application>

</manifest>


`

const genStrings = `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <string name="app_name">Main</string>
</resources>
`

const genBuildXML = `<?xml version="1.0" encoding="UTF-8"?>
<project name="Demo" default="help">

    <property file="local.properties" />

    <!-- The ant.properties file can be created by you. It is only edited by the
         'android' tool to add properties to it.
         This file must be checked in Version Control Systems. -->
    <property file="ant.properties" />

    <!-- version-tag: 1 -->
    <import file="${sdk.dir}/tools/ant/build.xml" />

    <!-- extension targets. Uncomment the ones where you want to do custom work
         in between standard targets -->

</project>
`

const genAntProps = `# This file is used to override default values used by the Ant build system.
#
# This file must be checked into Version Control Systems, as it is
# integral to the build system of your project.

# This file is only used by the Ant script.

# You can use this to override default values such as
#  'source.dir' for the location of your java source folder and
#  'out.dir' for the location of your output folder.

# You can also use it define how the release builds are signed by declaring
# the following properties:
#  'key.store' for the location of your keystore and
#  'key.alias' for the name of the key to use.
# The password will be asked during the build when you use the 'release' target.
`

const genMain = `package com.example.demo;

public class Main extends Activity {
}
`

// writeSkeleton lays out a freshly scaffolded project under dir.
func writeSkeleton(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"AndroidManifest.xml":            genManifest,
		"res/values/strings.xml":         genStrings,
		"build.xml":                      genBuildXML,
		"ant.properties":                 genAntProps,
		"local.properties":               "sdk.dir=/opt/android-sdk\n",
		"proguard-project.txt":           "# project specific proguard flags\n",
		"src/com/example/demo/Main.java": genMain,
	}

	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func writeFixture(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
