// modules_test.go
package moji

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// moduleSandbox switches the working directory to a temp dir so ⚙️ resolves
// module files there, and writes the given modules into it.
func moduleSandbox(t *testing.T, modules map[string]string) {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })

	for name, src := range modules {
		if err := os.WriteFile(filepath.Join(dir, name+moduleExt), []byte(src), 0o644); err != nil {
			t.Fatalf("write module %s: %v", name, err)
		}
	}
}

func runModules(t *testing.T, src string) (string, error) {
	t.Helper()
	ip := NewInterpreter()
	var out bytes.Buffer
	ip.Out = &out
	err := ip.RunSource(src)
	return out.String(), err
}

func Test_Modules_Import_MergesBindings(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"mathlib": `🌱
🔢 answer 👉 42 🔚
🧩 double n 📦 🔙 n ✖️ 2 🔚 📦⛔
🌳`,
	})
	out, err := runModules(t, `🌱
⚙️ mathlib 🔚
🖨️ answer 🔚
🖨️ double(21) 🔚
🌳`)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out != "42\n42\n" {
		t.Fatalf("output: %q", out)
	}
}

func Test_Modules_Import_Missing(t *testing.T) {
	moduleSandbox(t, nil)
	_, err := runModules(t, `🌱 ⚙️ nowhere 🔚 🌳`)
	re, ok := err.(*RuntimeError)
	if !ok || !strings.Contains(re.Msg, "cannot import module 'nowhere'") {
		t.Fatalf("want missing-module error, got %v", err)
	}
}

func Test_Modules_Import_SyntaxErrorInModule(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"broken": `🌱 🖨️ 🔚 🌳`,
	})
	_, err := runModules(t, `🌱 ⚙️ broken 🔚 🌳`)
	re, ok := err.(*RuntimeError)
	if !ok || !strings.Contains(re.Msg, "syntax error in module 'broken'") {
		t.Fatalf("want module syntax error, got %v", err)
	}
}

func Test_Modules_Import_CollisionWithGlobal(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"lib": `🌱 🔢 x 👉 1 🔚 🌳`,
	})
	_, err := runModules(t, `🌱
🔢 x 👉 0 🔚
⚙️ lib 🔚
🌳`)
	re, ok := err.(*RuntimeError)
	if !ok || !strings.Contains(re.Msg, "already been declared") {
		t.Fatalf("want collision error, got %v", err)
	}
}

func Test_Modules_Import_CollisionBetweenModules(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"a": `🌱 🔢 shared 👉 1 🔚 🌳`,
		"b": `🌱 🔢 shared 👉 2 🔚 🌳`,
	})
	_, err := runModules(t, `🌱 ⚙️ a 🔚 ⚙️ b 🔚 🌳`)
	re, ok := err.(*RuntimeError)
	if !ok || !strings.Contains(re.Msg, "already been declared") {
		t.Fatalf("want collision error, got %v", err)
	}
}

func Test_Modules_Import_MemoizedSingleExecution(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"noisy": `🌱 🖨️ "loading" 🔚 🔢 k 👉 1 🔚 🌳`,
	})
	out, err := runModules(t, `🌱
⚙️ noisy 🔚
⚙️ noisy 🔚
🖨️ k 🔚
🌳`)
	if err != nil {
		t.Fatalf("repeat import should be a no-op, got %v", err)
	}
	if out != "loading\n1\n" {
		t.Fatalf("module side effects must run exactly once: %q", out)
	}
}

func Test_Modules_Import_DiamondIsNotACollision(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"d": `🌱 🔢 base 👉 4 🔚 🌳`,
		"b": `🌱 ⚙️ d 🔚 🔢 left 👉 base ➕ 1 🔚 🌳`,
		"c": `🌱 ⚙️ d 🔚 🔢 right 👉 base ➕ 2 🔚 🌳`,
	})
	out, err := runModules(t, `🌱
⚙️ b 🔚
⚙️ c 🔚
🖨️ base ➕ left ➕ right 🔚
🌳`)
	if err != nil {
		t.Fatalf("diamond import must not collide on the shared module: %v", err)
	}
	if out != "15\n" {
		t.Fatalf("output: %q", out)
	}
}

func Test_Modules_Import_CycleDetected(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"a": `🌱 ⚙️ b 🔚 🌳`,
		"b": `🌱 ⚙️ a 🔚 🌳`,
	})
	_, err := runModules(t, `🌱 ⚙️ a 🔚 🌳`)
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("want *RuntimeError, got %v", err)
	}
	if !strings.Contains(re.Msg, "import cycle detected") || !strings.Contains(re.Msg, "a -> b -> a") {
		t.Fatalf("message: %q", re.Msg)
	}
}

func Test_Modules_Import_RuntimeErrorInsideModule(t *testing.T) {
	moduleSandbox(t, map[string]string{
		"boom": `🌱 🖨️ 1 ➗ 0 🔚 🌳`,
	})
	_, err := runModules(t, `🌱 ⚙️ boom 🔚 🌳`)
	re, ok := err.(*RuntimeError)
	if !ok || !strings.Contains(re.Msg, "error in module 'boom'") {
		t.Fatalf("want wrapped module error, got %v", err)
	}
	if !strings.Contains(re.Msg, "division by zero") {
		t.Fatalf("inner cause missing: %q", re.Msg)
	}
}
