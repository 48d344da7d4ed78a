package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"OrthoMark/internal/annotate"
	"OrthoMark/internal/export"
	"OrthoMark/internal/share"
	"OrthoMark/internal/ui"

	"fyne.io/fyne/v2"
)

const (
	CustomURLScheme = "orthomark://"
	Port            = 8878
)

func main() {
	args := os.Args
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s PHOTO [ANNOTATIONS.json]\n", filepath.Base(args[0]))
		fmt.Fprintf(os.Stderr, "       %s orthomark://HOST:PORT\n", filepath.Base(args[0]))
		fmt.Fprintf(os.Stderr, "       %s orthomark://          (browse the LAN for a host)\n", filepath.Base(args[0]))
		os.Exit(2)
	}
	if strings.HasPrefix(args[1], CustomURLScheme) {
		runViewer(args[1])
	} else {
		runEditor(args[1], args[2:])
	}
}

func runEditor(photoPath string, rest []string) {
	log.Println("Starting as EDITOR")
	img, err := loadPhoto(photoPath)
	if err != nil {
		log.Fatalf("Failed to load photo: %v", err)
	}

	var initial []annotate.Annotation
	annPath := annotationsPath(photoPath)
	if len(rest) > 0 {
		annPath = rest[0]
	}
	if data, err := os.ReadFile(annPath); err == nil {
		initial, err = annotate.UnmarshalSequence(data)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", annPath, err)
		}
		log.Printf("Loaded %d annotations from %s", len(initial), annPath)
	}

	editor := ui.NewEditor(img, initial, false)
	hub := share.NewHub(editor.Annotations, editor.FlattenPNG, editor.BasePNG)

	// Every commit goes straight to the viewers; restores (undo, redo,
	// clear, load) resync them with a full snapshot.
	editor.OnCommit = func(a annotate.Annotation) {
		msg, err := share.AnnotateMessage(a)
		if err != nil {
			log.Printf("Failed to encode annotation for mirror: %v", err)
			return
		}
		hub.Broadcast(msg)
	}
	editor.OnRestore = func(anns []annotate.Annotation) {
		if len(anns) == 0 {
			hub.Broadcast(share.ClearMessage())
			return
		}
		msg, err := share.SnapshotMessage(anns)
		if err != nil {
			log.Printf("Failed to encode snapshot for mirror: %v", err)
			return
		}
		hub.Broadcast(msg)
	}

	if server, err := share.Advertise(Port); err != nil {
		log.Printf("mDNS advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	hostIP, err := share.OutgoingIP()
	if err != nil {
		hostIP = "127.0.0.1"
	}
	shareLink := fmt.Sprintf("%s%s:%d", CustomURLScheme, hostIP, Port)

	a := ui.NewApp("OrthoMark - "+filepath.Base(photoPath), editor)
	hub.OnViewersChanged = func(n int) {
		a.SetStatus(fmt.Sprintf("Share link: %s (%d viewing)", shareLink, n))
	}
	go func() {
		if err := hub.ListenAndServe(Port); err != nil {
			log.Printf("Mirror server stopped: %v", err)
		}
	}()
	a.OnSave = func(anns []annotate.Annotation, png []byte) error {
		return persist(photoPath, annPath, anns, png)
	}
	a.OnExportPDF = func(w io.Writer) error {
		blob, err := editor.FlattenPNG()
		if err != nil {
			return err
		}
		pxW, pxH := editor.PhotoSize()
		return export.Report(w, filepath.Base(photoPath), blob, pxW, pxH, editor.Annotations())
	}
	a.SetStatus("Share link: " + shareLink)
	a.Run()
}

func runViewer(link string) {
	log.Println("Starting as VIEWER")
	addr := strings.TrimPrefix(link, CustomURLScheme)
	addr = strings.TrimSuffix(addr, "/")
	if addr == "" {
		log.Println("No host given, browsing the LAN...")
		found, err := share.Discover()
		if err != nil {
			log.Fatalf("Failed to find a host: %v", err)
		}
		log.Printf("Found host at %s", found)
		addr = found
	}

	img, err := fetchBase(addr)
	if err != nil {
		log.Fatalf("Failed to fetch photo from host: %v", err)
	}

	editor := ui.NewEditor(img, nil, true)
	a := ui.NewViewer("OrthoMark viewer - "+addr, editor)

	// Listen runs off the UI goroutine, so every applied message has to be
	// marshalled back onto it.
	go func() {
		err := share.Listen(addr, share.ViewerHandlers{
			OnAnnotate: func(an annotate.Annotation) {
				fyne.Do(func() { editor.ApplyRemote(an) })
			},
			OnSnapshot: func(anns []annotate.Annotation) {
				fyne.Do(func() { editor.ApplySnapshot(anns) })
			},
			OnClear: func() {
				fyne.Do(func() { editor.ApplySnapshot(nil) })
			},
		})
		a.SetStatus(fmt.Sprintf("Disconnected: %v", err))
	}()

	a.SetStatus("Mirroring " + addr)
	a.Run()
}

func loadPhoto(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func fetchBase(addr string) (image.Image, error) {
	resp, err := http.Get(fmt.Sprintf("http://%s/base.png", addr))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("host returned %s", resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding base photo: %w", err)
	}
	return img, nil
}

func annotationsPath(photoPath string) string {
	ext := filepath.Ext(photoPath)
	return strings.TrimSuffix(photoPath, ext) + ".annotations.json"
}

// persist writes the annotation sequence next to the photo along with the
// flattened copy.
func persist(photoPath, annPath string, anns []annotate.Annotation, png []byte) error {
	data, err := annotate.MarshalSequence(anns)
	if err != nil {
		return fmt.Errorf("encoding annotations: %w", err)
	}
	if err := os.WriteFile(annPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", annPath, err)
	}
	ext := filepath.Ext(photoPath)
	flatPath := strings.TrimSuffix(photoPath, ext) + "_annotated.png"
	if err := os.WriteFile(flatPath, png, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flatPath, err)
	}
	log.Printf("Saved %d annotations to %s and flattened photo to %s", len(anns), annPath, flatPath)
	return nil
}
